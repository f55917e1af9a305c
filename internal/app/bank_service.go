package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/example/qbank/internal/core/bank"
	"github.com/example/qbank/internal/logging"
	"github.com/example/qbank/internal/ports/primary"
	"github.com/example/qbank/internal/ports/secondary"
)

// BankServiceImpl implements the BankService interface.
type BankServiceImpl struct {
	bank     *bank.Bank
	store    secondary.QuestionFileStore
	exporter secondary.SpreadsheetExporter
	dirty    atomic.Bool
}

// NewBankService creates a new BankService with injected dependencies.
func NewBankService(
	b *bank.Bank,
	store secondary.QuestionFileStore,
	exporter secondary.SpreadsheetExporter,
) *BankServiceImpl {
	return &BankServiceImpl{
		bank:     b,
		store:    store,
		exporter: exporter,
	}
}

// AddQuestion creates a new question with the next free ID.
func (s *BankServiceImpl) AddQuestion(ctx context.Context, req primary.AddQuestionRequest) (*primary.AddQuestionResponse, error) {
	guardCtx := bank.AddQuestionContext{
		Text:       req.Text,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	}
	if err := bank.CanAddQuestion(guardCtx).Error(); err != nil {
		return nil, err
	}

	q := s.bank.Create(req.Text, req.Topic, req.Difficulty)
	s.dirty.Store(true)

	logger := logging.FromContext(ctx)
	logger.Debug().Int("question_id", q.ID).Str("topic", q.Topic).Msg("question added")

	return &primary.AddQuestionResponse{
		QuestionID: q.ID,
		Question:   toQuestion(q),
	}, nil
}

// UpdateQuestion changes the non-empty fields of a question.
func (s *BankServiceImpl) UpdateQuestion(ctx context.Context, req primary.UpdateQuestionRequest) error {
	changes := bank.Changes{
		Text:       req.Text,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
	}
	guardCtx := bank.UpdateQuestionContext{
		QuestionID: req.QuestionID,
		Exists:     s.bank.Has(req.QuestionID),
		Changes:    changes,
	}
	if err := bank.CanUpdateQuestion(guardCtx).Error(); err != nil {
		s.warnNotFound(ctx, "update", req.QuestionID, err)
		return err
	}

	if err := s.bank.Update(req.QuestionID, changes); err != nil {
		s.warnNotFound(ctx, "update", req.QuestionID, err)
		return err
	}
	s.dirty.Store(true)

	logger := logging.FromContext(ctx)
	logger.Debug().Int("question_id", req.QuestionID).Msg("question updated")
	return nil
}

// DeleteQuestion deletes a question.
func (s *BankServiceImpl) DeleteQuestion(ctx context.Context, questionID int) error {
	guardCtx := bank.DeleteQuestionContext{
		QuestionID: questionID,
		Exists:     s.bank.Has(questionID),
	}
	if err := bank.CanDeleteQuestion(guardCtx).Error(); err != nil {
		s.warnNotFound(ctx, "delete", questionID, err)
		return err
	}

	if err := s.bank.Delete(questionID); err != nil {
		s.warnNotFound(ctx, "delete", questionID, err)
		return err
	}
	s.dirty.Store(true)

	logger := logging.FromContext(ctx)
	logger.Debug().Int("question_id", questionID).Msg("question deleted")
	return nil
}

// GetQuestion retrieves a question by ID.
func (s *BankServiceImpl) GetQuestion(ctx context.Context, questionID int) (*primary.Question, error) {
	q, err := s.bank.Get(questionID)
	if err != nil {
		return nil, err
	}
	return toQuestion(q), nil
}

// ListQuestions lists every question ordered by ID.
func (s *BankServiceImpl) ListQuestions(ctx context.Context) ([]*primary.Question, error) {
	return toQuestions(s.bank.All()), nil
}

// SearchQuestions lists questions matching any of the topics and any of the difficulties.
func (s *BankServiceImpl) SearchQuestions(ctx context.Context, filters primary.SearchFilters) ([]*primary.Question, error) {
	return toQuestions(s.bank.Search(filters.Topics, filters.Difficulties)), nil
}

// RandomQuestion picks one matching question, or returns nil when none match.
func (s *BankServiceImpl) RandomQuestion(ctx context.Context, filters primary.RandomFilters) (*primary.Question, error) {
	q, ok := s.bank.Random(filters.Topic, filters.Difficulty)
	if !ok {
		return nil, nil
	}
	return toQuestion(q), nil
}

// Statistics summarizes the bank.
func (s *BankServiceImpl) Statistics(ctx context.Context) (*primary.Statistics, error) {
	stats := s.bank.Statistics()
	return &primary.Statistics{
		Total:        stats.Total,
		ByTopic:      stats.ByTopic,
		ByDifficulty: stats.ByDifficulty,
	}, nil
}

// SaveToFile writes the whole bank to a CSV file.
func (s *BankServiceImpl) SaveToFile(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("file name cannot be empty")
	}

	all := s.bank.All()
	if err := s.store.Save(ctx, path, toRecords(all)); err != nil {
		return err
	}
	s.dirty.Store(false)

	logger := logging.FromContext(ctx)
	logger.Info().Str("path", path).Int("count", len(all)).Msg("bank saved")
	return nil
}

// LoadFromFile replaces the whole bank with the content of a CSV file.
// The file is parsed completely before the bank is touched, so a failed load
// leaves the current questions in place.
func (s *BankServiceImpl) LoadFromFile(ctx context.Context, path string) (*primary.LoadResponse, error) {
	if path == "" {
		return nil, errors.New("file name cannot be empty")
	}

	logger := logging.FromContext(ctx)
	records, err := s.store.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("load failed, bank unchanged")
		return nil, err
	}

	questions := make([]bank.Question, len(records))
	for i, r := range records {
		questions[i] = bank.Question{
			ID:         r.ID,
			Text:       r.Text,
			Topic:      r.Topic,
			Difficulty: r.Difficulty,
		}
	}
	s.bank.Replace(questions)
	s.dirty.Store(false)

	count := s.bank.Len()
	logger.Info().Str("path", path).Int("count", count).Msg("bank loaded")
	return &primary.LoadResponse{Path: path, Count: count}, nil
}

// ExportSpreadsheet writes the bank and its statistics to an .xlsx report.
func (s *BankServiceImpl) ExportSpreadsheet(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("file name cannot be empty")
	}

	stats := s.bank.Statistics()
	err := s.exporter.Export(ctx, path, toRecords(s.bank.All()), &secondary.StatisticsRecord{
		Total:        stats.Total,
		ByTopic:      stats.ByTopic,
		ByDifficulty: stats.ByDifficulty,
	})
	if err != nil {
		return fmt.Errorf("failed to export spreadsheet: %w", err)
	}
	return nil
}

// Dirty reports whether the bank changed since the last save or load.
func (s *BankServiceImpl) Dirty() bool {
	return s.dirty.Load()
}

// Helper methods

func (s *BankServiceImpl) warnNotFound(ctx context.Context, op string, questionID int, err error) {
	if !errors.Is(err, bank.ErrNotFound) {
		return
	}
	logger := logging.FromContext(ctx)
	logger.Warn().Str("op", op).Int("question_id", questionID).Msg("question not found")
}

func toQuestion(q bank.Question) *primary.Question {
	return &primary.Question{
		ID:         q.ID,
		Text:       q.Text,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
	}
}

func toQuestions(qs []bank.Question) []*primary.Question {
	out := make([]*primary.Question, len(qs))
	for i, q := range qs {
		out[i] = toQuestion(q)
	}
	return out
}

func toRecords(qs []bank.Question) []*secondary.QuestionRecord {
	out := make([]*secondary.QuestionRecord, len(qs))
	for i, q := range qs {
		out[i] = &secondary.QuestionRecord{
			ID:         q.ID,
			Text:       q.Text,
			Topic:      q.Topic,
			Difficulty: q.Difficulty,
		}
	}
	return out
}

// Ensure BankServiceImpl implements the interface
var _ primary.BankService = (*BankServiceImpl)(nil)
