package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

const (
	defaultWidth    = 72
	chartHeight     = 10
	heatmapLabelPad = 18
)

type Translator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

// Data is everything one terminal report shows. Overview is nil when the
// cycle model is not configured.
type Data struct {
	Insights services.Insights
	Overview *services.Overview
	Language string
	Width    int
}

func Render(translator Translator, data Data) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}
	t := func(key string, args ...any) string {
		if len(args) == 0 {
			return translator.Translate(data.Language, key)
		}
		return translator.Translatef(data.Language, key, args...)
	}

	sections := []string{titleStyle.Render(t("report.title"))}
	if data.Overview != nil {
		sections = append(sections, renderOverview(t, *data.Overview))
	}

	insights := data.Insights
	sections = append(sections, renderSummary(t, insights))
	if len(insights.Cycles) == 0 {
		sections = append(sections, mutedStyle.Render(t("report.no_cycles")))
	} else {
		sections = append(sections,
			sectionStyle.Render(t("report.variance")),
			renderCycleChart(insights, width-8),
			sectionStyle.Render(t("report.heatmap")),
			RenderHeatmap(insights.Heatmap, insights.WindowDays),
		)
	}

	return panelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, joinWithBlankLines(sections)...))
}

func renderOverview(t func(string, ...any) string, overview services.Overview) string {
	phase := t("phase." + overview.Phase)
	lines := []string{
		t("report.cycle_day", overview.CycleDay, phase),
		t("report.next_period", services.FormatDay(overview.NextPeriodStart), overview.DaysUntilPeriod),
		t("report.fertile_window", services.FormatDay(overview.FertileWindow[0]), services.FormatDay(overview.FertileWindow[1])),
	}
	return strings.Join(lines, "\n")
}

func renderSummary(t func(string, ...any) string, insights services.Insights) string {
	lines := []string{
		t("report.cycles", len(insights.Cycles)),
		t("report.average_cycle", insights.Summary.AverageLength),
		t("report.average_period", insights.Summary.AveragePeriodLength),
	}
	if insights.Correlation != nil {
		lines = append(lines, t("report.correlation", *insights.Correlation, insights.CorrelationSamples))
	} else {
		lines = append(lines, mutedStyle.Render(t("report.correlation_insufficient", insights.CorrelationSamples)))
	}
	return strings.Join(lines, "\n")
}

// renderCycleChart draws one bar per cycle; longer than average cycles stand out.
func renderCycleChart(insights services.Insights, width int) string {
	if width < 20 {
		width = 20
	}
	chart := barchart.New(width, chartHeight)

	bars := make([]barchart.BarData, 0, len(insights.Summary.Variance))
	for _, entry := range insights.Summary.Variance {
		color := colorShort
		if entry.Deviation > 0 {
			color = colorLong
		}
		bars = append(bars, barchart.BarData{
			Label: entry.Label,
			Values: []barchart.BarValue{{
				Name:  entry.Label,
				Value: float64(entry.Length),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	legend := make([]string, 0, len(insights.Summary.Variance))
	for _, entry := range insights.Summary.Variance {
		legend = append(legend, fmt.Sprintf("%s %d (%+.1f)", entry.Label, entry.Length, entry.Deviation))
	}
	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), mutedStyle.Render(strings.Join(legend, "  ")))
}

// RenderHeatmap prints one row per symptom, sorted by id, with a cell per cycle day.
func RenderHeatmap(heatmap services.Heatmap, windowDays int) string {
	if len(heatmap) == 0 || windowDays <= 0 {
		return mutedStyle.Render("-")
	}

	symptoms := make([]string, 0, len(heatmap))
	for symptomID := range heatmap {
		symptoms = append(symptoms, symptomID)
	}
	sort.Strings(symptoms)

	rows := make([]string, 0, len(symptoms)+1)
	rows = append(rows, strings.Repeat(" ", heatmapLabelPad)+mutedStyle.Render(dayRuler(windowDays)))
	for _, symptomID := range symptoms {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%-*s", heatmapLabelPad, truncateLabel(symptomID, heatmapLabelPad-1)))
		for _, value := range heatmap[symptomID] {
			level := heatLevel(value)
			row.WriteString(heatLevels[level].Render(heatGlyphs[level]))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func heatLevel(value float64) int {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	level := int(math.Ceil(value))
	if level >= len(heatLevels) {
		return len(heatLevels) - 1
	}
	return level
}

// dayRuler marks every fifth cycle day.
func dayRuler(windowDays int) string {
	ruler := []rune(strings.Repeat(" ", windowDays))
	for day := 1; day <= windowDays; day += 5 {
		label := []rune(fmt.Sprintf("%d", day))
		for offset, char := range label {
			if day-1+offset < len(ruler) {
				ruler[day-1+offset] = char
			}
		}
	}
	return string(ruler)
}

func truncateLabel(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}

func joinWithBlankLines(sections []string) []string {
	result := make([]string, 0, len(sections)*2)
	for index, section := range sections {
		if index > 0 {
			result = append(result, "")
		}
		result = append(result, section)
	}
	return result
}
