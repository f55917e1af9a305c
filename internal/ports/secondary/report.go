package secondary

import "context"

// SpreadsheetExporter defines the secondary port for one-way report export.
type SpreadsheetExporter interface {
	// Export writes the records and the statistics to path.
	Export(ctx context.Context, path string, records []*QuestionRecord, stats *StatisticsRecord) error
}

// StatisticsRecord carries the bank statistics to a report.
type StatisticsRecord struct {
	Total        int
	ByTopic      map[string]int
	ByDifficulty map[string]int
}
