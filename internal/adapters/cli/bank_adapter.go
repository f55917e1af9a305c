// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"

	"github.com/example/qbank/internal/ports/primary"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	heading   = color.New(color.Bold)
)

func okMark() string   { return okColor.Sprint("✓") }
func warnMark() string { return warnColor.Sprint("!") }

// BankAdapter is a thin adapter that translates CLI operations to BankService calls.
// It depends only on the BankService interface, enabling easy testing with mocks.
type BankAdapter struct {
	service primary.BankService
	out     io.Writer
}

// NewBankAdapter creates a new BankAdapter with the given service.
func NewBankAdapter(service primary.BankService, out io.Writer) *BankAdapter {
	return &BankAdapter{
		service: service,
		out:     out,
	}
}

// Add creates a new question.
func (a *BankAdapter) Add(ctx context.Context, text, topic, difficulty string) error {
	resp, err := a.service.AddQuestion(ctx, primary.AddQuestionRequest{
		Text:       text,
		Topic:      topic,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}

	fmt.Fprintf(a.out, "%s Added question %d: %s\n", okMark(), resp.QuestionID, resp.Question.Text)
	fmt.Fprintf(a.out, "  Topic: %s\n", resp.Question.Topic)
	fmt.Fprintf(a.out, "  Difficulty: %s\n", resp.Question.Difficulty)
	return nil
}

// Update changes the given fields of a question. Empty fields are kept.
func (a *BankAdapter) Update(ctx context.Context, questionID int, text, topic, difficulty string) error {
	err := a.service.UpdateQuestion(ctx, primary.UpdateQuestionRequest{
		QuestionID: questionID,
		Text:       text,
		Topic:      topic,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	fmt.Fprintf(a.out, "%s Question %d updated\n", okMark(), questionID)
	return nil
}

// Delete deletes a question.
func (a *BankAdapter) Delete(ctx context.Context, questionID int) error {
	if err := a.service.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	fmt.Fprintf(a.out, "%s Question %d deleted\n", okMark(), questionID)
	return nil
}

// Show displays a single question.
func (a *BankAdapter) Show(ctx context.Context, questionID int) error {
	q, err := a.service.GetQuestion(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}

	a.printQuestion(q)
	return nil
}

// List displays every question, the full listing re-rendered after each change.
func (a *BankAdapter) List(ctx context.Context) error {
	questions, err := a.service.ListQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	if len(questions) == 0 {
		fmt.Fprintln(a.out, "No questions found")
		return nil
	}
	a.printTable(questions)
	return nil
}

// Search displays the questions matching the topic and difficulty filters.
func (a *BankAdapter) Search(ctx context.Context, topics, difficulties []string) error {
	questions, err := a.service.SearchQuestions(ctx, primary.SearchFilters{
		Topics:       topics,
		Difficulties: difficulties,
	})
	if err != nil {
		return fmt.Errorf("failed to search questions: %w", err)
	}

	if len(questions) == 0 {
		fmt.Fprintln(a.out, "No matching questions found")
		return nil
	}
	a.printTable(questions)
	return nil
}

// Random displays one question drawn at random among the matching ones.
func (a *BankAdapter) Random(ctx context.Context, topic, difficulty string) error {
	q, err := a.service.RandomQuestion(ctx, primary.RandomFilters{
		Topic:      topic,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("failed to pick a random question: %w", err)
	}

	if q == nil {
		fmt.Fprintln(a.out, "No matching questions found")
		return nil
	}
	a.printQuestion(q)
	return nil
}

// Stats displays the question count and the distribution by topic and difficulty.
func (a *BankAdapter) Stats(ctx context.Context) error {
	stats, err := a.service.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	fmt.Fprintf(a.out, "Total Questions: %d\n", stats.Total)
	heading.Fprintln(a.out, "Topic Distribution:")
	for _, topic := range slices.Sorted(maps.Keys(stats.ByTopic)) {
		fmt.Fprintf(a.out, "  %s: %d\n", topic, stats.ByTopic[topic])
	}
	heading.Fprintln(a.out, "Difficulty Distribution:")
	for _, level := range slices.Sorted(maps.Keys(stats.ByDifficulty)) {
		fmt.Fprintf(a.out, "  %s: %d\n", level, stats.ByDifficulty[level])
	}
	return nil
}

// Save writes the bank to path.
func (a *BankAdapter) Save(ctx context.Context, path string) error {
	if err := a.service.SaveToFile(ctx, path); err != nil {
		return fmt.Errorf("failed to save questions: %w", err)
	}

	fmt.Fprintf(a.out, "%s Questions saved to %s\n", okMark(), path)
	return nil
}

// Load replaces the bank with the content of path.
func (a *BankAdapter) Load(ctx context.Context, path string) error {
	resp, err := a.service.LoadFromFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	fmt.Fprintf(a.out, "%s Loaded %d questions from %s\n", okMark(), resp.Count, resp.Path)
	return nil
}

// Export writes a spreadsheet report to path.
func (a *BankAdapter) Export(ctx context.Context, path string) error {
	if err := a.service.ExportSpreadsheet(ctx, path); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Spreadsheet written to %s\n", okMark(), path)
	return nil
}

// WarnUnsaved prints a warning when the bank has changes that were never saved.
// It reports whether a warning was printed.
func (a *BankAdapter) WarnUnsaved() bool {
	if !a.service.Dirty() {
		return false
	}
	fmt.Fprintf(a.out, "%s Unsaved changes discarded (use 'save' before 'exit' to keep them)\n", warnMark())
	return true
}

func (a *BankAdapter) printQuestion(q *primary.Question) {
	fmt.Fprintf(a.out, "\nQuestion:   %d\n", q.ID)
	fmt.Fprintf(a.out, "Text:       %s\n", q.Text)
	fmt.Fprintf(a.out, "Topic:      %s\n", q.Topic)
	fmt.Fprintf(a.out, "Difficulty: %s\n", q.Difficulty)
	fmt.Fprintln(a.out)
}

func (a *BankAdapter) printTable(questions []*primary.Question) {
	fmt.Fprintf(a.out, "\n%-6s %-20s %-12s %s\n", "ID", "TOPIC", "DIFFICULTY", "QUESTION")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, q := range questions {
		fmt.Fprintf(a.out, "%-6d %-20s %-12s %s\n", q.ID, q.Topic, q.Difficulty, q.Text)
	}
	fmt.Fprintln(a.out)
}
