package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dortega/velocilector/internal/database"
	"github.com/dortega/velocilector/internal/models"
)

// TextRepository handles database operations for reading passages and
// their comprehension questions
type TextRepository struct {
	db *database.DB
}

// NewTextRepository creates a new text repository
func NewTextRepository(db *database.DB) *TextRepository {
	return &TextRepository{db: db}
}

// CreateText adds a reading passage
func (r *TextRepository) CreateText(language string, level int, title, content string) (*models.Text, error) {
	query := `
		INSERT INTO texts (language, level, title, content)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, language, level, title, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create text: %w", err)
	}
	return &models.Text{ID: id, Language: language, Level: level, Title: title, Content: content}, nil
}

// CreateQuestion attaches a multiple-choice question to a text. Options
// are stored as a JSON array.
func (r *TextRepository) CreateQuestion(q *models.Question) (*models.Question, error) {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	query := `
		INSERT INTO questions (text_id, level, prompt, options, correct_option)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, q.TextID, q.Level, q.Prompt, string(options), q.CorrectOption)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	created := *q
	created.ID = id
	return &created, nil
}

// GetTextByID retrieves a passage by ID
func (r *TextRepository) GetTextByID(id int64) (*models.Text, error) {
	query := `
		SELECT id, language, level, title, content, created_at
		FROM texts
		WHERE id = ?
	`
	t := &models.Text{}
	err := r.db.QueryRow(query, id).Scan(&t.ID, &t.Language, &t.Level, &t.Title, &t.Content, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get text: %w", err)
	}
	return t, nil
}

// GetRandomText picks one passage at random for a language and level.
// Returns nil when no passage exists.
func (r *TextRepository) GetRandomText(language string, level int) (*models.Text, error) {
	query := `
		SELECT id, language, level, title, content, created_at
		FROM texts
		WHERE language = ? AND level = ?
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT 1
	`
	t := &models.Text{}
	err := r.db.QueryRow(query, language, level).Scan(&t.ID, &t.Language, &t.Level, &t.Title, &t.Content, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random text: %w", err)
	}
	return t, nil
}

// GetQuestionsByTextID returns a text's questions in insertion order
func (r *TextRepository) GetQuestionsByTextID(textID int64) ([]models.Question, error) {
	query := `
		SELECT id, text_id, level, prompt, options, correct_option, created_at
		FROM questions
		WHERE text_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, textID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var options string
		if err := rows.Scan(&q.ID, &q.TextID, &q.Level, &q.Prompt, &options, &q.CorrectOption, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetTextsByLanguageLevel lists passages for the admin content pages
func (r *TextRepository) GetTextsByLanguageLevel(language string, level int) ([]models.Text, error) {
	query := `
		SELECT id, language, level, title, content, created_at
		FROM texts
		WHERE language = ? AND level = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, language, level)
	if err != nil {
		return nil, fmt.Errorf("failed to query texts: %w", err)
	}
	defer rows.Close()

	var texts []models.Text
	for rows.Next() {
		var t models.Text
		if err := rows.Scan(&t.ID, &t.Language, &t.Level, &t.Title, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan text: %w", err)
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

// DeleteText removes a passage and its questions
func (r *TextRepository) DeleteText(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM questions WHERE text_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM texts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete text: %w", err)
	}

	return tx.Commit()
}
