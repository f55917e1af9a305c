// Package xlsx exports the question bank as an Excel report.
package xlsx

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/example/qbank/internal/ports/secondary"
)

const (
	questionsSheet  = "Questions"
	statisticsSheet = "Statistics"
)

// Exporter implements secondary.SpreadsheetExporter with excelize.
type Exporter struct{}

// NewExporter creates a new spreadsheet exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one sheet with every question and one with the statistics.
func (e *Exporter) Export(ctx context.Context, path string, records []*secondary.QuestionRecord, stats *secondary.StatisticsRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeQuestions(f, records); err != nil {
		return fmt.Errorf("failed to write questions sheet: %w", err)
	}

	if _, err := f.NewSheet(statisticsSheet); err != nil {
		return fmt.Errorf("failed to create statistics sheet: %w", err)
	}
	if err := writeStatistics(f, stats); err != nil {
		return fmt.Errorf("failed to write statistics sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeQuestions(f *excelize.File, records []*secondary.QuestionRecord) error {
	sw, err := f.NewStreamWriter(questionsSheet)
	if err != nil {
		return err
	}

	if err := sw.SetRow("A1", []interface{}{"ID", "Question", "Topic", "Difficulty"}); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, sanitize(r.Text), sanitize(r.Topic), sanitize(r.Difficulty)}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func writeStatistics(f *excelize.File, stats *secondary.StatisticsRecord) error {
	sw, err := f.NewStreamWriter(statisticsSheet)
	if err != nil {
		return err
	}

	rows := [][]interface{}{{"Total", stats.Total}, {}}
	rows = append(rows, []interface{}{"Topic", "Count"})
	for _, topic := range slices.Sorted(maps.Keys(stats.ByTopic)) {
		rows = append(rows, []interface{}{sanitize(topic), stats.ByTopic[topic]})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Difficulty", "Count"})
	for _, level := range slices.Sorted(maps.Keys(stats.ByDifficulty)) {
		rows = append(rows, []interface{}{sanitize(level), stats.ByDifficulty[level]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	return sw.Flush()
}

// sanitize keeps spreadsheet applications from evaluating user text as a formula.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// Ensure Exporter implements the interface
var _ secondary.SpreadsheetExporter = (*Exporter)(nil)
