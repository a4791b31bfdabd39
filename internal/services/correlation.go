package services

import "math"

// MinCorrelationSamples is the smallest number of sleep samples a coefficient is
// reported for.
const MinCorrelationSamples = 5

type correlationSums struct {
	n     int
	sumX  float64
	sumY  float64
	sumXY float64
	sumX2 float64
	sumY2 float64
}

func (sums *correlationSums) add(x float64, y float64) {
	sums.n++
	sums.sumX += x
	sums.sumY += y
	sums.sumXY += x * y
	sums.sumX2 += x * x
	sums.sumY2 += y * y
}

// pearson returns 0 when either series has no variance.
func (sums correlationSums) pearson() float64 {
	n := float64(sums.n)
	numerator := n*sums.sumXY - sums.sumX*sums.sumY
	denominator := math.Sqrt((n*sums.sumX2 - sums.sumX*sums.sumX) * (n*sums.sumY2 - sums.sumY*sums.sumY))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}
	return math.Max(-1, math.Min(1, numerator/denominator))
}

// CorrelateSleepWithSymptoms computes Pearson's r between hours of sleep and the
// day's summed symptom intensity over every log with sleep recorded. ok is false
// when fewer than MinCorrelationSamples days qualify.
func CorrelateSleepWithSymptoms(cycles []Cycle) (coefficient float64, ok bool) {
	sums := collectSleepSymptomSums(cycles)
	if sums.n < MinCorrelationSamples {
		return 0, false
	}
	return sums.pearson(), true
}

// SleepSampleCount reports how many days qualify for the sleep correlation.
func SleepSampleCount(cycles []Cycle) int {
	return collectSleepSymptomSums(cycles).n
}

func collectSleepSymptomSums(cycles []Cycle) correlationSums {
	sums := correlationSums{}
	for _, cycle := range cycles {
		for _, entry := range cycle.Logs {
			if entry.SleepHours == nil || *entry.SleepHours <= 0 {
				continue
			}
			load := 0
			for _, intensity := range entry.Symptoms {
				load += intensity
			}
			sums.add(*entry.SleepHours, float64(load))
		}
	}
	return sums
}
