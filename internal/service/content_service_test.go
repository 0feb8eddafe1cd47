package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/models"
)

type stubWordStore struct {
	words []models.Word
	err   error
}

func (s *stubWordStore) GetWords(language string, level, limit int) ([]models.Word, error) {
	return s.words, s.err
}

type stubTextStore struct {
	text      *models.Text
	questions []models.Question
	err       error
}

func (s *stubTextStore) GetRandomText(language string, level int) (*models.Text, error) {
	return s.text, s.err
}

func (s *stubTextStore) GetQuestionsByTextID(textID int64) ([]models.Question, error) {
	return s.questions, s.err
}

func TestWordPoolEmptyIsUnavailable(t *testing.T) {
	svc := NewContentService(&stubWordStore{}, &stubTextStore{})

	_, err := svc.WordPool(context.Background(), "es", 3, 100)
	if !errors.Is(err, game.ErrContentUnavailable) {
		t.Errorf("WordPool on empty pool = %v, want ErrContentUnavailable", err)
	}
}

func TestWordPoolReturnsWords(t *testing.T) {
	store := &stubWordStore{words: []models.Word{
		{ID: 1, Text: "casa"},
		{ID: 2, Text: "perro"},
	}}
	svc := NewContentService(store, &stubTextStore{})

	words, err := svc.WordPool(context.Background(), "es", 1, 100)
	if err != nil {
		t.Fatalf("WordPool: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("len(words) = %d, want 2", len(words))
	}
}

func TestRandomTextWithQuestions(t *testing.T) {
	tests := []struct {
		name    string
		store   *stubTextStore
		wantErr error
	}{
		{
			name:    "no text for level",
			store:   &stubTextStore{},
			wantErr: game.ErrContentUnavailable,
		},
		{
			name: "text without questions",
			store: &stubTextStore{
				text: &models.Text{ID: 1, Content: "hola"},
			},
			wantErr: game.ErrContentUnavailable,
		},
		{
			name: "complete text",
			store: &stubTextStore{
				text:      &models.Text{ID: 1, Content: "hola"},
				questions: []models.Question{{ID: 1, TextID: 1, Prompt: "?"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContentService(&stubWordStore{}, tt.store)
			twq, err := svc.RandomTextWithQuestions(context.Background(), "es", 2)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if twq == nil || len(twq.Questions) != 1 {
				t.Errorf("unexpected result %+v", twq)
			}
		})
	}
}
