package repository

import (
	"fmt"

	"github.com/dortega/velocilector/internal/database"
	"github.com/dortega/velocilector/internal/models"
)

// WordRepository handles database operations for the word pools
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// CreateWord adds a word to a language/level pool
func (r *WordRepository) CreateWord(language string, level int, text string) (*models.Word, error) {
	query := `
		INSERT INTO words (language, level, text)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, language, level, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create word: %w", err)
	}
	return &models.Word{ID: id, Language: language, Level: level, Text: text}, nil
}

// GetWords returns up to limit words for a language and level in random
// order. The session's own sequencer handles anti-repeat; the random order
// here just varies which slice of a large pool each session sees.
func (r *WordRepository) GetWords(language string, level, limit int) ([]models.Word, error) {
	query := `
		SELECT id, language, level, text, created_at
		FROM words
		WHERE language = ? AND level = ?
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT ?
	`
	rows, err := r.db.Query(query, language, level, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Language, &w.Level, &w.Text, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// CountWords returns the pool size for a language and level
func (r *WordRepository) CountWords(language string, level int) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM words WHERE language = ? AND level = ?"
	if err := r.db.QueryRow(query, language, level).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// DeleteWord removes a word from the pool
func (r *WordRepository) DeleteWord(id int64) error {
	_, err := r.db.Exec("DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}

// BulkInsertWords inserts a batch of words inside one transaction. Used by
// the Excel importer and the backup restore tool.
func (r *WordRepository) BulkInsertWords(words []models.Word) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO words (language, level, text) VALUES (?, ?, ?)"
	inserted := 0
	for _, w := range words {
		if _, err := tx.Exec(query, w.Language, w.Level, w.Text); err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", w.Text, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit words: %w", err)
	}
	return inserted, nil
}
