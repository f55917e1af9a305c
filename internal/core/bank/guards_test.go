package bank

import (
	"errors"
	"testing"
)

func TestCanAddQuestion(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AddQuestionContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can add complete question",
			ctx:         AddQuestionContext{Text: "What is a heap?", Topic: "Data Structures", Difficulty: "Easy"},
			wantAllowed: true,
		},
		{
			name:        "cannot add without text",
			ctx:         AddQuestionContext{Text: "  ", Topic: "Data Structures", Difficulty: "Easy"},
			wantAllowed: false,
			wantReason:  "question text must not be empty",
		},
		{
			name:        "cannot add without topic and difficulty",
			ctx:         AddQuestionContext{Text: "What is a heap?"},
			wantAllowed: false,
			wantReason:  "question topic, difficulty must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAddQuestion(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanUpdateQuestion(t *testing.T) {
	tests := []struct {
		name         string
		ctx          UpdateQuestionContext
		wantAllowed  bool
		wantNotFound bool
	}{
		{
			name:        "can update existing question",
			ctx:         UpdateQuestionContext{QuestionID: 1, Exists: true, Changes: Changes{Topic: "T2"}},
			wantAllowed: true,
		},
		{
			name:         "cannot update missing question",
			ctx:          UpdateQuestionContext{QuestionID: 9, Exists: false, Changes: Changes{Topic: "T2"}},
			wantAllowed:  false,
			wantNotFound: true,
		},
		{
			name:        "cannot update with no changes",
			ctx:         UpdateQuestionContext{QuestionID: 1, Exists: true},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpdateQuestion(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if got := errors.Is(result.Error(), ErrNotFound); got != tt.wantNotFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.wantNotFound)
			}
		})
	}
}

func TestCanDeleteQuestion(t *testing.T) {
	if result := CanDeleteQuestion(DeleteQuestionContext{QuestionID: 1, Exists: true}); !result.Allowed {
		t.Errorf("expected delete of existing question to be allowed, got %q", result.Reason)
	}

	result := CanDeleteQuestion(DeleteQuestionContext{QuestionID: 3, Exists: false})
	if result.Allowed {
		t.Fatal("expected delete of missing question to be refused")
	}
	if err := result.Error(); err == nil || err.Error() != "question 3: question not found" {
		t.Errorf("Error() = %v, want %q", err, "question 3: question not found")
	}
}
