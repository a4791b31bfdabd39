package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

const DefaultInsightsCycleCount = 6

var ErrInsightsLogsLoadFailed = errors.New("load logs for insights failed")

type InsightsDayReader interface {
	FetchAllLogsForUser(userID uint) ([]models.DayLog, error)
}

type InsightsService struct {
	days InsightsDayReader
}

type Insights struct {
	Cycles             []Cycle      `json:"cycles"`
	Summary            CycleSummary `json:"summary"`
	WindowDays         int          `json:"window_days"`
	Heatmap            Heatmap      `json:"heatmap"`
	Correlation        *float64     `json:"correlation"`
	CorrelationSamples int          `json:"correlation_samples"`
}

type Overview struct {
	Predictions
	CycleDay int    `json:"cycle_day"`
	Phase    string `json:"phase"`
}

func NewInsightsService(days InsightsDayReader) *InsightsService {
	return &InsightsService{days: days}
}

// NormalizeInsightsCycleCount limits the look-back to 3, 6 or 12 cycles.
func NormalizeInsightsCycleCount(count int) int {
	switch count {
	case 3, 6, 12:
		return count
	default:
		return DefaultInsightsCycleCount
	}
}

// BuildInsights runs the retrospective statistics over the owner's most recent
// cycleCount detected cycles.
func (service *InsightsService) BuildInsights(user *models.User, cycleCount int) (Insights, error) {
	index, err := service.loadIndex(user.ID)
	if err != nil {
		return Insights{}, err
	}

	var lastPeriodStart time.Time
	if user.LastPeriodStart != nil {
		lastPeriodStart = *user.LastPeriodStart
	}
	cycles, err := DetectCycles(index, lastPeriodStart)
	if err != nil {
		return Insights{}, err
	}
	cycles = RecentCycles(cycles, NormalizeInsightsCycleCount(cycleCount))

	summary := SummarizeCycles(cycles)
	windowDays := HeatmapWindowDays(summary)
	insights := Insights{
		Cycles:             cycles,
		Summary:            summary,
		WindowDays:         windowDays,
		Heatmap:            AggregateHeatmap(cycles, windowDays),
		CorrelationSamples: SleepSampleCount(cycles),
	}
	if coefficient, ok := CorrelateSleepWithSymptoms(cycles); ok {
		insights.Correlation = &coefficient
	}
	return insights, nil
}

func (service *InsightsService) BuildOverview(user *models.User, today time.Time) (Overview, error) {
	config := user.CycleConfig()
	predictions, err := PredictNextCycle(config, today)
	if err != nil {
		return Overview{}, err
	}
	cycleDay, phase, err := CurrentCycleDay(config, today)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Predictions: predictions,
		CycleDay:    cycleDay,
		Phase:       phase,
	}, nil
}

func (service *InsightsService) BuildCalendar(user *models.User, month time.Time, today time.Time) ([]CalendarDayState, error) {
	index, err := service.loadIndex(user.ID)
	if err != nil {
		return nil, err
	}
	return BuildCalendarMonth(user.CycleConfig(), index, month, today)
}

func (service *InsightsService) loadIndex(userID uint) (DayLogIndex, error) {
	logs, err := service.days.FetchAllLogsForUser(userID)
	if err != nil {
		return nil, ErrInsightsLogsLoadFailed
	}
	return IndexDayLogs(logs), nil
}
