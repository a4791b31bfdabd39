package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

func intPointer(value int) *int {
	return &value
}

func floatPointer(value float64) *float64 {
	return &value
}

func stringPointer(value string) *string {
	return &value
}

func TestNormalizeDayLogInputRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name  string
		input DayLogInput
		want  error
	}{
		{
			name:  "menstruation intensity",
			input: DayLogInput{Menstruation: models.Menstruation{Active: true, Intensity: intPointer(5)}},
			want:  ErrInvalidMenstruationIntensity,
		},
		{
			name:  "symptom intensity",
			input: DayLogInput{Symptoms: map[string]int{"cramps": 4}},
			want:  ErrInvalidSymptomIntensity,
		},
		{
			name:  "blank symptom id",
			input: DayLogInput{Symptoms: map[string]int{"  ": 1}},
			want:  ErrInvalidSymptomID,
		},
		{
			name:  "sleep hours",
			input: DayLogInput{SleepHours: floatPointer(25)},
			want:  ErrInvalidSleepHours,
		},
		{
			name:  "water count",
			input: DayLogInput{Water: intPointer(-1)},
			want:  ErrInvalidWaterCount,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NormalizeDayLogInput(testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestNormalizeDayLogInputClearsInactiveDetails(t *testing.T) {
	discomfort := true
	normalized, err := NormalizeDayLogInput(DayLogInput{
		Menstruation: models.Menstruation{Intensity: intPointer(3), DischargeColor: stringPointer("red")},
		Sex:          models.SexActivity{Contraception: stringPointer("condom"), Discomfort: &discomfort},
		Symptoms:     map[string]int{" Cramps ": 2, "bloating": 0},
		Mood:         stringPointer("   "),
		Notes:        "  note  ",
	})
	if err != nil {
		t.Fatalf("NormalizeDayLogInput() unexpected error: %v", err)
	}
	if normalized.Menstruation.Intensity != nil || normalized.Menstruation.DischargeColor != nil {
		t.Fatalf("expected menstruation details cleared, got %+v", normalized.Menstruation)
	}
	if normalized.Sex.Contraception != nil || normalized.Sex.Discomfort != nil {
		t.Fatalf("expected sex details cleared, got %+v", normalized.Sex)
	}
	if len(normalized.Symptoms) != 1 || normalized.Symptoms["cramps"] != 2 {
		t.Fatalf("expected lowercased symptom without zeros, got %v", normalized.Symptoms)
	}
	if normalized.Mood != nil {
		t.Fatalf("expected blank mood to be cleared")
	}
	if normalized.Notes != "note" {
		t.Fatalf("expected trimmed notes, got %q", normalized.Notes)
	}
}

func TestNormalizeDayLogInputKeepsZeroOptionalValues(t *testing.T) {
	normalized, err := NormalizeDayLogInput(DayLogInput{
		SleepHours: floatPointer(0),
		Water:      intPointer(0),
	})
	if err != nil {
		t.Fatalf("NormalizeDayLogInput() unexpected error: %v", err)
	}
	if normalized.SleepHours == nil || *normalized.SleepHours != 0 {
		t.Fatalf("expected explicit zero sleep to survive")
	}
	if normalized.Water == nil || *normalized.Water != 0 {
		t.Fatalf("expected explicit zero water to survive")
	}
}

func TestTrimDayNotesLimitsRunes(t *testing.T) {
	value := strings.Repeat("я", models.MaxNotesLength+10)
	trimmed := TrimDayNotes(value)
	if got := len([]rune(trimmed)); got != models.MaxNotesLength {
		t.Fatalf("expected %d runes, got %d", models.MaxNotesLength, got)
	}
}
