package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RecommendedDevice is one entry in the model's recommendation payload.
type RecommendedDevice struct {
	DeviceName           string  `json:"deviceName"`
	Reason               string  `json:"reason"`
	EstimatedMonthlyCost float64 `json:"estimatedMonthlyCost,omitempty"`
}

// RecommendationPayload is the JSON shape the model is asked to produce.
type RecommendationPayload struct {
	DeviceRecommendations []RecommendedDevice `json:"deviceRecommendations"`
	Tips                  []string            `json:"tips,omitempty"`
	Summary               string              `json:"summary,omitempty"`
}

// StripFences removes the markdown code fences models like to wrap JSON in,
// with or without a language tag.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ParseRecommendations decodes a model response. The payload must carry a
// deviceRecommendations list; anything else is an error so the caller can
// fall back to the deterministic rule.
func ParseRecommendations(raw string) (*RecommendationPayload, error) {
	cleaned := StripFences(raw)

	var probe struct {
		DeviceRecommendations json.RawMessage `json:"deviceRecommendations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("ai: parse recommendations: %w", err)
	}
	list := bytes.TrimSpace(probe.DeviceRecommendations)
	if len(list) == 0 || list[0] != '[' {
		return nil, errors.New("ai: deviceRecommendations is missing or not a list")
	}

	var payload RecommendationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("ai: parse recommendations: %w", err)
	}
	return &payload, nil
}

// ParseTips decodes a tips response, requiring a non-empty tips list.
func ParseTips(raw string) ([]string, error) {
	cleaned := StripFences(raw)

	var payload struct {
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("ai: parse tips: %w", err)
	}
	if len(payload.Tips) == 0 {
		return nil, errors.New("ai: payload has no tips")
	}
	return payload.Tips, nil
}
