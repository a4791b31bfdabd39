package services

import "testing"

func TestSummarizeCyclesFallbackForNewUsers(t *testing.T) {
	t.Parallel()

	summary := SummarizeCycles(nil)
	if summary.AverageLength != 28 || summary.AveragePeriodLength != 5 {
		t.Fatalf("expected 28/5 fallback, got %.2f/%.2f", summary.AverageLength, summary.AveragePeriodLength)
	}
	if summary.Variance == nil || len(summary.Variance) != 0 {
		t.Fatalf("expected empty non-nil variance series, got %#v", summary.Variance)
	}
	if HeatmapWindowDays(summary) != 30 {
		t.Fatalf("expected fallback heatmap window 30, got %d", HeatmapWindowDays(summary))
	}
}

func TestSummarizeCyclesAveragesAndVariance(t *testing.T) {
	t.Parallel()

	cycles := []Cycle{
		{ID: "a", Length: 27, PeriodLength: 4},
		{ID: "b", Length: 30, PeriodLength: 5},
		{ID: "c", Length: 29, PeriodLength: 6},
	}

	summary := SummarizeCycles(cycles)
	wantAverage := 86.0 / 3.0
	if summary.AverageLength != wantAverage {
		t.Fatalf("expected unrounded average %.4f, got %.4f", wantAverage, summary.AverageLength)
	}
	if summary.RoundedAverageLength() != 29 {
		t.Fatalf("expected rounded average 29, got %d", summary.RoundedAverageLength())
	}
	if summary.AveragePeriodLength != 5 || summary.RoundedAveragePeriodLength() != 5 {
		t.Fatalf("expected average period length 5, got %.2f", summary.AveragePeriodLength)
	}
	if HeatmapWindowDays(summary) != 31 {
		t.Fatalf("expected heatmap window 31, got %d", HeatmapWindowDays(summary))
	}

	expected := []CycleVariance{
		{Label: "C1", Length: 27, Deviation: -1.7},
		{Label: "C2", Length: 30, Deviation: 1.3},
		{Label: "C3", Length: 29, Deviation: 0.3},
	}
	if len(summary.Variance) != len(expected) {
		t.Fatalf("expected %d variance entries, got %d", len(expected), len(summary.Variance))
	}
	for index, entry := range summary.Variance {
		if entry != expected[index] {
			t.Fatalf("variance %d: expected %+v, got %+v", index, expected[index], entry)
		}
	}
}

func TestRoundedAverageRoundsHalfUp(t *testing.T) {
	t.Parallel()

	summary := SummarizeCycles([]Cycle{{Length: 28, PeriodLength: 4}, {Length: 29, PeriodLength: 5}})
	if summary.RoundedAverageLength() != 29 {
		t.Fatalf("expected 28.5 to round to 29, got %d", summary.RoundedAverageLength())
	}
	if summary.RoundedAveragePeriodLength() != 5 {
		t.Fatalf("expected 4.5 to round to 5, got %d", summary.RoundedAveragePeriodLength())
	}
}

func TestRecentCycles(t *testing.T) {
	t.Parallel()

	cycles := []Cycle{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}

	if got := RecentCycles(cycles, 10); len(got) != 4 {
		t.Fatalf("expected all cycles, got %d", len(got))
	}
	if got := RecentCycles(cycles, 0); len(got) != 4 {
		t.Fatalf("expected all cycles for n=0, got %d", len(got))
	}

	trimmed := RecentCycles(cycles, 2)
	if len(trimmed) != 2 || trimmed[0].ID != "3" || trimmed[1].ID != "4" {
		t.Fatalf("expected the two most recent cycles oldest first, got %#v", trimmed)
	}
}
