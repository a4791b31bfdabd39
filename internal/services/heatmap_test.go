package services

import (
	"testing"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

func TestAggregateHeatmapAveragesAlignedDays(t *testing.T) {
	t.Parallel()

	first := Cycle{
		StartDate: mustParseDay(t, "2024-01-01"),
		Length:    28,
		Logs: []models.DayLog{
			symptomLog("2024-01-01", map[string]int{"cramps": 3, "headache": 1}),
			symptomLog("2024-01-02", map[string]int{"cramps": 2}),
			symptomLog("2024-01-05", map[string]int{"headache": 0}),
		},
	}
	second := Cycle{
		StartDate: mustParseDay(t, "2024-01-29"),
		Length:    30,
		Logs: []models.DayLog{
			symptomLog("2024-01-29", map[string]int{"cramps": 1}),
			symptomLog("2024-01-30", map[string]int{"cramps": 2, "bloating": 2}),
		},
	}

	heatmap := AggregateHeatmap([]Cycle{first, second}, 5)

	if len(heatmap) != 3 {
		t.Fatalf("expected 3 symptom rows, got %d (%v)", len(heatmap), heatmap)
	}
	for symptomID, row := range heatmap {
		if len(row) != 5 {
			t.Fatalf("expected row %s to have 5 slots, got %d", symptomID, len(row))
		}
	}

	cramps := heatmap["cramps"]
	if cramps[0] != 2 || cramps[1] != 2 || cramps[2] != 0 {
		t.Fatalf("unexpected cramps row %v", cramps)
	}
	headache := heatmap["headache"]
	if headache[0] != 1 || headache[4] != 0 {
		t.Fatalf("expected zero intensity to be ignored, got headache row %v", headache)
	}
	if heatmap["bloating"][1] != 2 {
		t.Fatalf("unexpected bloating row %v", heatmap["bloating"])
	}
}

func TestAggregateHeatmapExcludesDaysOutsideWindow(t *testing.T) {
	t.Parallel()

	cycle := Cycle{
		StartDate: mustParseDay(t, "2024-01-01"),
		Length:    40,
		Logs: []models.DayLog{
			symptomLog("2024-01-03", map[string]int{"fatigue": 1}),
			symptomLog("2024-01-04", map[string]int{"fatigue": 3}),
			symptomLog("2024-01-20", map[string]int{"acne": 2}),
		},
	}

	heatmap := AggregateHeatmap([]Cycle{cycle}, 3)
	if _, ok := heatmap["acne"]; ok {
		t.Fatalf("expected out-of-window symptom to be absent, got %v", heatmap["acne"])
	}
	fatigue := heatmap["fatigue"]
	if len(fatigue) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(fatigue))
	}
	if fatigue[2] != 1 {
		t.Fatalf("expected late-window value to stay unclamped, got %v", fatigue)
	}
}

func TestAggregateHeatmapEmptyInputs(t *testing.T) {
	t.Parallel()

	if heatmap := AggregateHeatmap(nil, 30); len(heatmap) != 0 {
		t.Fatalf("expected empty heatmap, got %v", heatmap)
	}

	cycle := Cycle{
		StartDate: mustParseDay(t, "2024-01-01"),
		Logs:      []models.DayLog{symptomLog("2024-01-01", map[string]int{"cramps": 3})},
	}
	if heatmap := AggregateHeatmap([]Cycle{cycle}, 0); len(heatmap) != 0 {
		t.Fatalf("expected empty heatmap for zero window, got %v", heatmap)
	}
}

func symptomLog(date string, symptoms map[string]int) models.DayLog {
	entry := makeLog(date, false)
	entry.Symptoms = symptoms
	return entry
}
