package primary

import "context"

// BankService defines the primary port for question bank operations.
type BankService interface {
	// AddQuestion creates a new question with the next free ID.
	AddQuestion(ctx context.Context, req AddQuestionRequest) (*AddQuestionResponse, error)

	// UpdateQuestion changes the non-empty fields of a question.
	UpdateQuestion(ctx context.Context, req UpdateQuestionRequest) error

	// DeleteQuestion deletes a question.
	DeleteQuestion(ctx context.Context, questionID int) error

	// GetQuestion retrieves a question by ID.
	GetQuestion(ctx context.Context, questionID int) (*Question, error)

	// ListQuestions lists every question ordered by ID.
	ListQuestions(ctx context.Context) ([]*Question, error)

	// SearchQuestions lists questions matching any of the topics and any of the difficulties.
	SearchQuestions(ctx context.Context, filters SearchFilters) ([]*Question, error)

	// RandomQuestion picks one matching question, or returns nil when none match.
	RandomQuestion(ctx context.Context, filters RandomFilters) (*Question, error)

	// Statistics summarizes the bank.
	Statistics(ctx context.Context) (*Statistics, error)

	// SaveToFile writes the whole bank to a CSV file.
	SaveToFile(ctx context.Context, path string) error

	// LoadFromFile replaces the whole bank with the content of a CSV file.
	LoadFromFile(ctx context.Context, path string) (*LoadResponse, error)

	// ExportSpreadsheet writes the bank and its statistics to an .xlsx report.
	ExportSpreadsheet(ctx context.Context, path string) error

	// Dirty reports whether the bank changed since the last save or load.
	Dirty() bool
}

// AddQuestionRequest contains parameters for adding a question.
type AddQuestionRequest struct {
	Text       string
	Topic      string
	Difficulty string
}

// AddQuestionResponse contains the result of adding a question.
type AddQuestionResponse struct {
	QuestionID int
	Question   *Question
}

// UpdateQuestionRequest contains parameters for updating a question.
// Empty fields are left unchanged.
type UpdateQuestionRequest struct {
	QuestionID int
	Text       string
	Topic      string
	Difficulty string
}

// SearchFilters contains filter options for searching questions.
type SearchFilters struct {
	Topics       []string
	Difficulties []string
}

// RandomFilters contains the optional filters for drawing a random question.
type RandomFilters struct {
	Topic      string
	Difficulty string
}

// LoadResponse contains the result of loading a file.
type LoadResponse struct {
	Path  string
	Count int
}

// Question represents a question entity at the port boundary.
type Question struct {
	ID         int
	Text       string
	Topic      string
	Difficulty string
}

// Statistics represents bank statistics at the port boundary.
type Statistics struct {
	Total        int
	ByTopic      map[string]int
	ByDifficulty map[string]int
}
