package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/youssefibrahim146/Volt/apperrors"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func TestSmartRecommendationsUsesModelPayload(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "amira@example.com", 1000)
	seedCatalogEntry(t, env, "Fan", []int{60}, false)

	gen := &stubGenerator{text: "```json\n" +
		`{"deviceRecommendations":[{"deviceName":"Fan","reason":"quiet and cheap"}],"tips":["dust the blades"]}` +
		"\n```"}
	aiUC := NewAIUseCase(env.Recs, env.HomeDevices, gen)

	payload, err := aiUC.SmartRecommendations(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("smart recommendations: %v", err)
	}
	if len(payload.DeviceRecommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(payload.DeviceRecommendations))
	}
	if payload.DeviceRecommendations[0].Reason != "quiet and cheap" {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestSmartRecommendationsFallbackOnGeneratorError(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "amira@example.com", 1000)
	for _, name := range []string{"Fan", "Lamp", "Router", "Charger"} {
		seedCatalogEntry(t, env, name, []int{30}, false)
	}

	aiUC := NewAIUseCase(env.Recs, env.HomeDevices, &stubGenerator{err: errors.New("quota exceeded")})
	payload, err := aiUC.SmartRecommendations(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("smart recommendations: %v", err)
	}
	if len(payload.DeviceRecommendations) != 3 {
		t.Errorf("fallback size = %d, want 3", len(payload.DeviceRecommendations))
	}
	known := map[string]bool{"Fan": true, "Lamp": true, "Router": true, "Charger": true}
	for _, rec := range payload.DeviceRecommendations {
		if !known[rec.DeviceName] {
			t.Errorf("fallback recommended unknown device %q", rec.DeviceName)
		}
		if rec.Reason == "" {
			t.Errorf("fallback recommendation for %q has no reason", rec.DeviceName)
		}
	}
}

func TestSmartRecommendationsFallbackOnGarbage(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "amira@example.com", 1000)
	seedCatalogEntry(t, env, "Fan", []int{60}, false)

	aiUC := NewAIUseCase(env.Recs, env.HomeDevices, &stubGenerator{text: "Sure! Here are some ideas for you."})
	payload, err := aiUC.SmartRecommendations(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("smart recommendations: %v", err)
	}
	if len(payload.DeviceRecommendations) != 1 || payload.DeviceRecommendations[0].DeviceName != "Fan" {
		t.Errorf("unexpected fallback payload %+v", payload)
	}
}

func TestSmartRecommendationsWithoutGenerator(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "amira@example.com", 1000)
	seedCatalogEntry(t, env, "Fan", []int{60}, false)

	aiUC := NewAIUseCase(env.Recs, env.HomeDevices, nil)
	payload, err := aiUC.SmartRecommendations(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("smart recommendations: %v", err)
	}
	if len(payload.DeviceRecommendations) != 1 {
		t.Errorf("got %d recommendations, want 1", len(payload.DeviceRecommendations))
	}
}

func TestDeviceTips(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "amira@example.com", 1000)
	fan := seedCatalogEntry(t, env, "Fan", []int{60}, false)
	device, _, err := env.HomeDevices.Assign(user.ID, fan.ID, 60, 8)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	aiUC := NewAIUseCase(env.Recs, env.HomeDevices, &stubGenerator{text: `{"tips":["use a timer"]}`})
	tips, err := aiUC.DeviceTips(context.Background(), user.ID, device.ID)
	if err != nil {
		t.Fatalf("tips: %v", err)
	}
	if len(tips) != 1 || tips[0] != "use a timer" {
		t.Errorf("tips = %v", tips)
	}

	// an unusable answer falls back to the fixed list
	aiUC = NewAIUseCase(env.Recs, env.HomeDevices, &stubGenerator{text: "laconic"})
	tips, err = aiUC.DeviceTips(context.Background(), user.ID, device.ID)
	if err != nil {
		t.Fatalf("fallback tips: %v", err)
	}
	if len(tips) == 0 {
		t.Error("fallback tips are empty")
	}

	if _, err := aiUC.DeviceTips(context.Background(), user.ID, "missing"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperrors.KindOf(err))
	}
}
