// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// QuestionFileStore defines the secondary port for flat-file persistence of
// the question bank.
type QuestionFileStore interface {
	// Save writes every record to path, replacing any previous content.
	Save(ctx context.Context, path string, records []*QuestionRecord) error

	// Load reads and parses every record from path. It returns an error
	// without partial results if any row is malformed.
	Load(ctx context.Context, path string) ([]*QuestionRecord, error)
}

// QuestionRecord represents a question as stored in a file.
type QuestionRecord struct {
	ID         int
	Text       string
	Topic      string
	Difficulty string
}
