package usecases

import (
	"context"
	"fmt"
	"log"

	"github.com/youssefibrahim146/Volt/ai"
	"github.com/youssefibrahim146/Volt/entities"
)

// maxFallbackRecommendations caps the deterministic recommendation list
// used when the model is unavailable or answers with garbage.
const maxFallbackRecommendations = 3

type AIUseCase struct {
	Recommendations *RecommendationUseCase
	HomeDevices     *HomeDeviceUseCase
	Generator       ai.TextGenerator
}

// NewAIUseCase wires the AI flows. A nil generator is allowed and makes
// every call take the deterministic fallback path.
func NewAIUseCase(recommendations *RecommendationUseCase, homeDevices *HomeDeviceUseCase, generator ai.TextGenerator) *AIUseCase {
	return &AIUseCase{
		Recommendations: recommendations,
		HomeDevices:     homeDevices,
		Generator:       generator,
	}
}

// SmartRecommendations asks the language model to rank the affordable
// devices. Generation and parsing failures fall back to the first
// affordable entries, so callers always get a usable payload.
func (uc *AIUseCase) SmartRecommendations(ctx context.Context, userID string) (*ai.RecommendationPayload, error) {
	report, err := uc.Recommendations.Affordable(userID)
	if err != nil {
		return nil, err
	}

	if uc.Generator == nil {
		return fallbackRecommendations(report), nil
	}

	prompt := ai.RecommendationPrompt(report.RemainingBudget, uc.Recommendations.Rate, promptDevices(report), uc.promptAssignments(userID))
	text, err := uc.Generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("AI recommendation failed, using fallback: %v", err)
		return fallbackRecommendations(report), nil
	}

	payload, err := ai.ParseRecommendations(text)
	if err != nil {
		log.Printf("AI returned an unusable payload, using fallback: %v", err)
		return fallbackRecommendations(report), nil
	}
	return payload, nil
}

// DeviceTips returns energy-saving tips for one of the user's assignments.
func (uc *AIUseCase) DeviceTips(ctx context.Context, userID, homeDeviceID string) ([]string, error) {
	device, err := uc.HomeDevices.Get(userID, homeDeviceID)
	if err != nil {
		return nil, err
	}

	if uc.Generator == nil {
		return defaultTips(device), nil
	}

	prompt := ai.TipsPrompt(device.SystemDevice.Name, device.ChosenWatts, device.WorkHours, device.SystemDevice.AllDay)
	text, err := uc.Generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("AI tips failed, using fallback: %v", err)
		return defaultTips(device), nil
	}

	tips, err := ai.ParseTips(text)
	if err != nil {
		log.Printf("AI returned unusable tips, using fallback: %v", err)
		return defaultTips(device), nil
	}
	return tips, nil
}

// promptAssignments collects what the user already runs, as model context.
// Best effort: prompt enrichment never fails the request.
func (uc *AIUseCase) promptAssignments(userID string) []ai.PromptAssignment {
	report, err := uc.HomeDevices.CalculateCost(userID)
	if err != nil {
		return nil
	}
	owned := make([]ai.PromptAssignment, 0, len(report.Items))
	for _, item := range report.Items {
		owned = append(owned, ai.PromptAssignment{
			Name:        item.DeviceName,
			Watts:       item.ChosenWatts,
			WorkHours:   item.WorkHours,
			MonthlyCost: item.MonthlyCost,
		})
	}
	return owned
}

func promptDevices(report *RecommendationReport) []ai.PromptDevice {
	devices := make([]ai.PromptDevice, 0, len(report.Devices))
	for _, d := range report.Devices {
		devices = append(devices, ai.PromptDevice{
			Name:        d.Name,
			Watts:       d.Watts,
			AllDay:      d.AllDay,
			MonthlyCost: d.MonthlyCost,
		})
	}
	return devices
}

func fallbackRecommendations(report *RecommendationReport) *ai.RecommendationPayload {
	payload := &ai.RecommendationPayload{
		DeviceRecommendations: []ai.RecommendedDevice{},
	}
	for i, d := range report.Devices {
		if i == maxFallbackRecommendations {
			break
		}
		payload.DeviceRecommendations = append(payload.DeviceRecommendations, ai.RecommendedDevice{
			DeviceName:           d.Name,
			Reason:               fmt.Sprintf("Fits your remaining budget at about %.2f per month", d.MonthlyCost),
			EstimatedMonthlyCost: d.MonthlyCost,
		})
	}
	return payload
}

func defaultTips(device *entities.HomeDevice) []string {
	name := device.SystemDevice.Name
	if name == "" {
		name = "this device"
	}
	return []string{
		fmt.Sprintf("Unplug %s when it is not in use to avoid standby drain.", name),
		fmt.Sprintf("Run %s at the lowest wattage option that still does the job.", name),
		"Shift heavy usage away from peak hours where possible.",
	}
}
