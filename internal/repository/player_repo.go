package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dortega/velocilector/internal/database"
	"github.com/dortega/velocilector/internal/models"
)

// PlayerRepository handles database operations for child reading profiles
type PlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, user_id, name, reading_level, language, age, gender,
	hair_color, hair_style, skin_tone, eye_color, COALESCE(avatar_url, ''),
	created_at, updated_at`

// CreatePlayer creates a new player profile under a user account
func (r *PlayerRepository) CreatePlayer(p *models.Player) (*models.Player, error) {
	query := `
		INSERT INTO players (user_id, name, reading_level, language, age, gender,
			hair_color, hair_style, skin_tone, eye_color, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		p.UserID, p.Name, p.ReadingLevel, p.Language, p.Age, p.Gender,
		p.HairColor, p.HairStyle, p.SkinTone, p.EyeColor, p.AvatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	created := *p
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

func scanPlayer(scan func(dest ...interface{}) error) (*models.Player, error) {
	p := &models.Player{}
	err := scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.ReadingLevel,
		&p.Language,
		&p.Age,
		&p.Gender,
		&p.HairColor,
		&p.HairStyle,
		&p.SkinTone,
		&p.EyeColor,
		&p.AvatarURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlayerByID retrieves a player by ID
func (r *PlayerRepository) GetPlayerByID(id int64) (*models.Player, error) {
	query := "SELECT " + playerColumns + " FROM players WHERE id = ?"
	p, err := scanPlayer(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// GetPlayersByUserID retrieves all players belonging to a user
func (r *PlayerRepository) GetPlayersByUserID(userID int64) ([]models.Player, error) {
	query := "SELECT " + playerColumns + " FROM players WHERE user_id = ? ORDER BY created_at"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// UpdatePlayer updates a player's profile fields
func (r *PlayerRepository) UpdatePlayer(p *models.Player) error {
	query := `
		UPDATE players
		SET name = ?, reading_level = ?, language = ?, age = ?, gender = ?,
			hair_color = ?, hair_style = ?, skin_tone = ?, eye_color = ?,
			avatar_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		p.Name, p.ReadingLevel, p.Language, p.Age, p.Gender,
		p.HairColor, p.HairStyle, p.SkinTone, p.EyeColor, p.AvatarURL, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

// UpdateReadingLevel moves a player to a new level
func (r *PlayerRepository) UpdateReadingLevel(playerID int64, level int) error {
	query := `
		UPDATE players
		SET reading_level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, level, playerID)
	if err != nil {
		return fmt.Errorf("failed to update reading level: %w", err)
	}
	return nil
}

// DeletePlayer deletes a player and all their game history
func (r *PlayerRepository) DeletePlayer(id int64) error {
	_, err := r.db.Exec("DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
