package services

import (
	"fmt"
	"math"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

type CycleVariance struct {
	Label     string  `json:"label"`
	Length    int     `json:"length"`
	Deviation float64 `json:"deviation"`
}

type CycleSummary struct {
	AverageLength       float64         `json:"average_length"`
	AveragePeriodLength float64         `json:"average_period_length"`
	Variance            []CycleVariance `json:"variance"`
}

// SummarizeCycles averages cycle and period lengths. With no cycles it falls back
// to the default 28/5 model so new users still get a usable summary.
func SummarizeCycles(cycles []Cycle) CycleSummary {
	if len(cycles) == 0 {
		return CycleSummary{
			AverageLength:       models.DefaultCycleLength,
			AveragePeriodLength: models.DefaultPeriodLength,
			Variance:            []CycleVariance{},
		}
	}

	lengths := make([]int, 0, len(cycles))
	periodLengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		lengths = append(lengths, cycle.Length)
		periodLengths = append(periodLengths, cycle.PeriodLength)
	}

	summary := CycleSummary{
		AverageLength:       averageInts(lengths),
		AveragePeriodLength: averageInts(periodLengths),
		Variance:            make([]CycleVariance, 0, len(cycles)),
	}
	for index, cycle := range cycles {
		summary.Variance = append(summary.Variance, CycleVariance{
			Label:     fmt.Sprintf("C%d", index+1),
			Length:    cycle.Length,
			Deviation: roundToTenth(float64(cycle.Length) - summary.AverageLength),
		})
	}
	return summary
}

func (summary CycleSummary) RoundedAverageLength() int {
	return roundHalfUp(summary.AverageLength)
}

func (summary CycleSummary) RoundedAveragePeriodLength() int {
	return roundHalfUp(summary.AveragePeriodLength)
}

// HeatmapWindowDays covers an average cycle plus two days of overrun.
func HeatmapWindowDays(summary CycleSummary) int {
	return summary.RoundedAverageLength() + 2
}

// RecentCycles keeps the last n cycles, oldest first. n <= 0 keeps all of them.
func RecentCycles(cycles []Cycle, n int) []Cycle {
	if n <= 0 || len(cycles) <= n {
		return cycles
	}
	return cycles[len(cycles)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

func roundToTenth(value float64) float64 {
	return math.Floor(value*10+0.5) / 10
}
