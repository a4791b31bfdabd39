package services

// Heatmap maps a symptom identifier to its mean intensity per day-of-cycle index.
type Heatmap map[string][]float64

type heatmapSlots struct {
	sums   []int
	counts []int
}

// AggregateHeatmap aligns every cycle on its start date and averages each
// symptom's non-zero intensities per day index. Logs at or beyond windowDays are
// excluded rather than clamped into the last slot.
func AggregateHeatmap(cycles []Cycle, windowDays int) Heatmap {
	result := make(Heatmap)
	if windowDays <= 0 {
		return result
	}

	slotsBySymptom := make(map[string]*heatmapSlots)
	for _, cycle := range cycles {
		for _, entry := range cycle.Logs {
			dayIndex := DaysBetween(cycle.StartDate, entry.Date)
			if dayIndex < 0 || dayIndex >= windowDays {
				continue
			}

			for symptomID, intensity := range entry.Symptoms {
				if intensity == 0 {
					continue
				}
				slots, ok := slotsBySymptom[symptomID]
				if !ok {
					slots = &heatmapSlots{
						sums:   make([]int, windowDays),
						counts: make([]int, windowDays),
					}
					slotsBySymptom[symptomID] = slots
				}
				slots.sums[dayIndex] += intensity
				slots.counts[dayIndex]++
			}
		}
	}

	for symptomID, slots := range slotsBySymptom {
		averages := make([]float64, windowDays)
		for index := range averages {
			if slots.counts[index] > 0 {
				averages[index] = float64(slots.sums[index]) / float64(slots.counts[index])
			}
		}
		result[symptomID] = averages
	}
	return result
}
