package bank

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error // optional sentinel wrapped by Error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause != nil {
		return fmt.Errorf("%s: %w", r.Reason, r.Cause)
	}
	return fmt.Errorf("%s", r.Reason)
}

// AddQuestionContext provides context for question creation guards.
type AddQuestionContext struct {
	Text       string
	Topic      string
	Difficulty string
}

// UpdateQuestionContext provides context for question update guards.
type UpdateQuestionContext struct {
	QuestionID int
	Exists     bool
	Changes    Changes
}

// DeleteQuestionContext provides context for question deletion guards.
type DeleteQuestionContext struct {
	QuestionID int
	Exists     bool
}

// CanAddQuestion evaluates whether a question can be created interactively.
// Rules:
// - Text, topic and difficulty must not be blank
func CanAddQuestion(ctx AddQuestionContext) GuardResult {
	var missing []string
	if strings.TrimSpace(ctx.Text) == "" {
		missing = append(missing, "text")
	}
	if strings.TrimSpace(ctx.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(ctx.Difficulty) == "" {
		missing = append(missing, "difficulty")
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("question %s must not be empty", strings.Join(missing, ", ")),
		}
	}

	return GuardResult{Allowed: true}
}

// CanUpdateQuestion evaluates whether a question can be updated.
// Rules:
// - Question must exist
// - At least one field must change
func CanUpdateQuestion(ctx UpdateQuestionContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("question %d", ctx.QuestionID),
			Cause:   ErrNotFound,
		}
	}

	if ctx.Changes.IsEmpty() {
		return GuardResult{
			Allowed: false,
			Reason:  "must specify --text, --topic and/or --difficulty",
		}
	}

	return GuardResult{Allowed: true}
}

// CanDeleteQuestion evaluates whether a question can be deleted.
// Rules:
// - Question must exist
func CanDeleteQuestion(ctx DeleteQuestionContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("question %d", ctx.QuestionID),
			Cause:   ErrNotFound,
		}
	}

	return GuardResult{Allowed: true}
}
