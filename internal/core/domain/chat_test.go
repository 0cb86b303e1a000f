package domain

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestChatSettings_Clamp(t *testing.T) {
	defaults := DefaultChatSettings()

	tests := []struct {
		name        string
		maxTokens   int
		temperature *float64
		model       string
		want        ChatSettings
	}{
		{"defaults", 0, nil, "", defaults},
		{"too few tokens", 5, nil, "", ChatSettings{Model: defaults.Model, Temperature: defaults.Temperature, MaxTokens: 32}},
		{"too many tokens", 4096, nil, "", ChatSettings{Model: defaults.Model, Temperature: defaults.Temperature, MaxTokens: 512}},
		{"negative temperature", 0, floatPtr(-1), "", ChatSettings{Model: defaults.Model, Temperature: 0, MaxTokens: 256}},
		{"hot temperature", 0, floatPtr(3), "", ChatSettings{Model: defaults.Model, Temperature: 1, MaxTokens: 256}},
		{"explicit zero temperature", 0, floatPtr(0), "", ChatSettings{Model: defaults.Model, Temperature: 0, MaxTokens: 256}},
		{"model override", 100, floatPtr(0.5), "gpt-4o", ChatSettings{Model: "gpt-4o", Temperature: 0.5, MaxTokens: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults.Clamp(tt.maxTokens, tt.temperature, tt.model)
			if got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
