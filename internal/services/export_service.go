package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/cycleinsights/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Menstruation",
	"Intensity",
	"Discharge color",
	"Symptoms",
	"Mood",
	"Sleep",
	"Water",
	"Sex",
	"Contraception",
	"Discomfort",
	"Notes",
}

type ExportDayReader interface {
	FetchLogsForOptionalRange(userID uint, from *time.Time, to *time.Time) ([]models.DayLog, error)
}

type ExportService struct {
	days ExportDayReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

func NewExportService(days ExportDayReader) *ExportService {
	return &ExportService{days: days}
}

func (service *ExportService) loadSorted(userID uint, from *time.Time, to *time.Time) ([]models.DayLog, error) {
	logs, err := service.days.FetchLogsForOptionalRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs, nil
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	logs, err := service.loadSorted(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(logs) == 0 {
		return ExportSummary{}, nil
	}

	return ExportSummary{
		TotalEntries: len(logs),
		HasData:      true,
		DateFrom:     FormatDay(logs[0].Date),
		DateTo:       FormatDay(logs[len(logs)-1].Date),
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, from *time.Time, to *time.Time) ([]models.DayLog, error) {
	logs, err := service.loadSorted(userID, from, to)
	if err != nil {
		return nil, err
	}
	for index := range logs {
		if logs[index].Symptoms == nil {
			logs[index].Symptoms = map[string]int{}
		}
	}
	return logs, nil
}

func (service *ExportService) BuildCSVRows(userID uint, from *time.Time, to *time.Time) ([][]string, error) {
	logs, err := service.loadSorted(userID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(logs))
	for _, entry := range logs {
		rows = append(rows, exportCSVRow(entry))
	}
	return rows, nil
}

func (service *ExportService) WriteCSV(writer io.Writer, userID uint, from *time.Time, to *time.Time) error {
	rows, err := service.BuildCSVRows(userID, from, to)
	if err != nil {
		return err
	}

	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func exportCSVRow(entry models.DayLog) []string {
	return []string{
		FormatDay(entry.Date),
		csvYesNo(entry.Menstruation.Active),
		csvOptionalInt(entry.Menstruation.Intensity),
		csvOptionalString(entry.Menstruation.DischargeColor),
		csvSymptoms(entry.Symptoms),
		csvOptionalString(entry.Mood),
		csvOptionalFloat(entry.SleepHours),
		csvOptionalInt(entry.Water),
		csvYesNo(entry.Sex.Active),
		csvOptionalString(entry.Sex.Contraception),
		csvOptionalBool(entry.Sex.Discomfort),
		entry.Notes,
	}
}

// csvSymptoms renders "id:intensity" pairs sorted by id and joined with semicolons.
func csvSymptoms(symptoms map[string]int) string {
	ids := make([]string, 0, len(symptoms))
	for id, intensity := range symptoms {
		if intensity > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id+":"+strconv.Itoa(symptoms[id]))
	}
	return strings.Join(parts, ";")
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvOptionalBool(value *bool) string {
	if value == nil {
		return ""
	}
	return csvYesNo(*value)
}

func csvOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func csvOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
