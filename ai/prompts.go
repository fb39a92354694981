package ai

import (
	"fmt"
	"strings"
)

// PromptDevice is the catalog context handed to the prompt builders.
type PromptDevice struct {
	Name        string
	Watts       int
	AllDay      bool
	MonthlyCost float64
}

// PromptAssignment is a device the user already runs at home.
type PromptAssignment struct {
	Name        string
	Watts       int
	WorkHours   float64
	MonthlyCost float64
}

// RecommendationPrompt asks the model to rank the affordable devices for a
// user with the given remaining monthly budget.
func RecommendationPrompt(remainingBudget, rate float64, affordable []PromptDevice, owned []PromptAssignment) string {
	var sb strings.Builder
	sb.WriteString("You are an energy advisor for a household electricity budgeting app.\n")
	fmt.Fprintf(&sb, "The user has %.2f of their monthly budget left and pays %.2f per kilowatt-hour.\n", remainingBudget, rate)

	if len(owned) > 0 {
		sb.WriteString("They already run:\n")
		for _, d := range owned {
			fmt.Fprintf(&sb, "- %s: %dW for %.1f hours a day, about %.2f per month\n", d.Name, d.Watts, d.WorkHours, d.MonthlyCost)
		}
	}

	if len(affordable) == 0 {
		sb.WriteString("No catalog device currently fits the remaining budget.\n")
	} else {
		sb.WriteString("These devices fit the remaining budget:\n")
		for _, d := range affordable {
			usage := "a few hours a day"
			if d.AllDay {
				usage = "24 hours a day"
			}
			fmt.Fprintf(&sb, "- %s: %dW, runs %s, about %.2f per month\n", d.Name, d.Watts, usage, d.MonthlyCost)
		}
	}

	sb.WriteString("\nRecommend at most 3 of these devices, best value first, with a short reason each, ")
	sb.WriteString("plus a few general energy-saving tips.\n")
	sb.WriteString("Respond with strict JSON only, no markdown fences, in exactly this shape:\n")
	sb.WriteString(`{"deviceRecommendations":[{"deviceName":"...","reason":"...","estimatedMonthlyCost":0}],"tips":["..."]}`)
	return sb.String()
}

// TipsPrompt asks the model for usage tips about one assigned device.
func TipsPrompt(deviceName string, watts int, workHours float64, allDay bool) string {
	var sb strings.Builder
	sb.WriteString("You are an energy advisor for a household electricity budgeting app.\n")
	if allDay {
		fmt.Fprintf(&sb, "The user runs a %s at %dW around the clock.\n", deviceName, watts)
	} else {
		fmt.Fprintf(&sb, "The user runs a %s at %dW for about %.1f hours a day.\n", deviceName, watts, workHours)
	}
	sb.WriteString("Give 3 to 5 practical tips to lower this device's electricity cost.\n")
	sb.WriteString("Respond with strict JSON only, no markdown fences, in exactly this shape:\n")
	sb.WriteString(`{"tips":["..."]}`)
	return sb.String()
}
