package service

import (
	"context"
	"fmt"

	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/models"
)

// wordStore is the slice of the word repository the content service needs
type wordStore interface {
	GetWords(language string, level, limit int) ([]models.Word, error)
}

// textStore is the slice of the text repository the content service needs
type textStore interface {
	GetRandomText(language string, level int) (*models.Text, error)
	GetQuestionsByTextID(textID int64) ([]models.Question, error)
}

// ContentService serves game content from the database. It implements
// game.ContentProvider for running sessions.
type ContentService struct {
	words wordStore
	texts textStore
}

// NewContentService creates a new content service
func NewContentService(words wordStore, texts textStore) *ContentService {
	return &ContentService{words: words, texts: texts}
}

// WordPool returns up to count words for a speed session. An empty pool is
// reported as game.ErrContentUnavailable so the session enters its error
// phase instead of presenting nothing.
func (s *ContentService) WordPool(ctx context.Context, language string, level, count int) ([]models.Word, error) {
	words, err := s.words.GetWords(language, level, count)
	if err != nil {
		return nil, fmt.Errorf("failed to load word pool: %w", err)
	}
	if len(words) == 0 {
		return nil, game.ErrContentUnavailable
	}
	return words, nil
}

// RandomTextWithQuestions picks a passage and its questions for a
// comprehension session
func (s *ContentService) RandomTextWithQuestions(ctx context.Context, language string, level int) (*models.TextWithQuestions, error) {
	text, err := s.texts.GetRandomText(language, level)
	if err != nil {
		return nil, fmt.Errorf("failed to load text: %w", err)
	}
	if text == nil {
		return nil, game.ErrContentUnavailable
	}

	questions, err := s.texts.GetQuestionsByTextID(text.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, game.ErrContentUnavailable
	}

	return &models.TextWithQuestions{Text: *text, Questions: questions}, nil
}
