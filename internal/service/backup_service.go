package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/dortega/velocilector/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string                    `json:"version"`
	ExportedAt time.Time                 `json:"exported_at"`
	Users      []UserBackup              `json:"users"`
	Players    []PlayerBackup            `json:"players"`
	Words      []WordBackup              `json:"words"`
	Texts      []TextBackup              `json:"texts"`
	Questions  []QuestionBackup          `json:"questions"`
	SpeedGames []SpeedGameBackup         `json:"speed_games"`
	CompGames  []ComprehensionGameBackup `json:"comprehension_games"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PlayerBackup represents a player profile for backup
type PlayerBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	ReadingLevel int       `json:"reading_level"`
	Language     string    `json:"language"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	HairColor    string    `json:"hair_color"`
	HairStyle    string    `json:"hair_style"`
	SkinTone     string    `json:"skin_tone"`
	EyeColor     string    `json:"eye_color"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// WordBackup represents a word pool entry for backup
type WordBackup struct {
	ID       int64  `json:"id"`
	Language string `json:"language"`
	Level    int    `json:"level"`
	Text     string `json:"text"`
}

// TextBackup represents a reading passage for backup
type TextBackup struct {
	ID       int64  `json:"id"`
	Language string `json:"language"`
	Level    int    `json:"level"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// QuestionBackup represents a comprehension question for backup
type QuestionBackup struct {
	ID            int64  `json:"id"`
	TextID        int64  `json:"text_id"`
	Level         int    `json:"level"`
	Prompt        string `json:"prompt"`
	Options       string `json:"options"` // JSON array, stored verbatim
	CorrectOption int    `json:"correct_option"`
}

// SpeedGameBackup represents a speed game result for backup
type SpeedGameBackup struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	PlayerID      int64     `json:"player_id"`
	Level         int       `json:"level"`
	Language      string    `json:"language"`
	Words         string    `json:"words"` // JSON array, stored verbatim
	WordCount     int       `json:"word_count"`
	TotalTimeMs   int       `json:"total_time_ms"`
	AverageTimeMs int       `json:"average_time_ms"`
	WPM           int       `json:"wpm"`
	CreatedAt     time.Time `json:"created_at"`
}

// ComprehensionGameBackup represents a comprehension game result for backup
type ComprehensionGameBackup struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	PlayerID             int64     `json:"player_id"`
	TextID               int64     `json:"text_id"`
	Level                int       `json:"level"`
	Language             string    `json:"language"`
	TextContent          string    `json:"text_content"`
	WordCount            int       `json:"word_count"`
	ReadingTimeMs        int       `json:"reading_time_ms"`
	AverageReadingTimeMs int       `json:"average_reading_time_ms"`
	TotalQuestions       int       `json:"total_questions"`
	CorrectAnswers       int       `json:"correct_answers"`
	Percentage           int       `json:"percentage"`
	AnswerTimesMs        string    `json:"answer_times_ms"` // JSON array, stored verbatim
	TotalAnswerTimeMs    int       `json:"total_answer_time_ms"`
	CreatedAt            time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a complete backup of the database as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		run  func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"players", s.exportPlayers},
		{"words", s.exportWords},
		{"texts", s.exportTexts},
		{"questions", s.exportQuestions},
		{"speed games", s.exportSpeedGames},
		{"comprehension games", s.exportComprehensionGames},
	}
	for _, step := range steps {
		if err := step.run(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d players, %d words, %d texts, %d questions, %d speed games, %d comprehension games",
		len(backup.Users), len(backup.Players), len(backup.Words), len(backup.Texts),
		len(backup.Questions), len(backup.SpeedGames), len(backup.CompGames))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Insert in dependency order: users before players, texts before
	// questions, game results last.
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importPlayers(backup.Players); err != nil {
		return fmt.Errorf("failed to import players: %w", err)
	}
	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importTexts(backup.Texts); err != nil {
		return fmt.Errorf("failed to import texts: %w", err)
	}
	if err := s.importQuestions(backup.Questions); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importSpeedGames(backup.SpeedGames); err != nil {
		return fmt.Errorf("failed to import speed games: %w", err)
	}
	if err := s.importComprehensionGames(backup.CompGames); err != nil {
		return fmt.Errorf("failed to import comprehension games: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''),
		COALESCE(oauth_subject, ''), is_admin, created_at, updated_at
		FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
			&u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportPlayers(backup *BackupData) error {
	query := `SELECT id, user_id, name, reading_level, language, age, gender,
		hair_color, hair_style, skin_tone, eye_color, COALESCE(avatar_url, ''), created_at
		FROM players ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PlayerBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.ReadingLevel, &p.Language,
			&p.Age, &p.Gender, &p.HairColor, &p.HairStyle, &p.SkinTone,
			&p.EyeColor, &p.AvatarURL, &p.CreatedAt); err != nil {
			return err
		}
		backup.Players = append(backup.Players, p)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, language, level, text FROM words ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.Language, &w.Level, &w.Text); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportTexts(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, language, level, title, content FROM texts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TextBackup
		if err := rows.Scan(&t.ID, &t.Language, &t.Level, &t.Title, &t.Content); err != nil {
			return err
		}
		backup.Texts = append(backup.Texts, t)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, text_id, level, prompt, options, correct_option FROM questions ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.TextID, &q.Level, &q.Prompt, &q.Options, &q.CorrectOption); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportSpeedGames(backup *BackupData) error {
	query := `SELECT id, user_id, player_id, level, language, words,
		word_count, total_time_ms, average_time_ms, wpm, created_at
		FROM speed_games ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g SpeedGameBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.PlayerID, &g.Level, &g.Language,
			&g.Words, &g.WordCount, &g.TotalTimeMs, &g.AverageTimeMs, &g.WPM, &g.CreatedAt); err != nil {
			return err
		}
		backup.SpeedGames = append(backup.SpeedGames, g)
	}
	return rows.Err()
}

func (s *BackupService) exportComprehensionGames(backup *BackupData) error {
	query := `SELECT id, user_id, player_id, text_id, level, language,
		text_content, word_count, reading_time_ms, average_reading_time_ms,
		total_questions, correct_answers, percentage, answer_times_ms,
		total_answer_time_ms, created_at
		FROM comprehension_games ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g ComprehensionGameBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.PlayerID, &g.TextID, &g.Level, &g.Language,
			&g.TextContent, &g.WordCount, &g.ReadingTimeMs, &g.AverageReadingTimeMs,
			&g.TotalQuestions, &g.CorrectAnswers, &g.Percentage, &g.AnswerTimesMs,
			&g.TotalAnswerTimeMs, &g.CreatedAt); err != nil {
			return err
		}
		backup.CompGames = append(backup.CompGames, g)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	query := `INSERT INTO users (id, email, password_hash, name, oauth_provider,
		oauth_subject, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, u := range users {
		if _, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name,
			u.OAuthProvider, u.OAuthSubject, u.IsAdmin, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPlayers(players []PlayerBackup) error {
	query := `INSERT INTO players (id, user_id, name, reading_level, language, age,
		gender, hair_color, hair_style, skin_tone, eye_color, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, p := range players {
		if _, err := s.db.Exec(query, p.ID, p.UserID, p.Name, p.ReadingLevel, p.Language,
			p.Age, p.Gender, p.HairColor, p.HairStyle, p.SkinTone, p.EyeColor,
			p.AvatarURL, p.CreatedAt); err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importWords(words []WordBackup) error {
	query := "INSERT INTO words (id, language, level, text) VALUES (?, ?, ?, ?)"
	for _, w := range words {
		if _, err := s.db.Exec(query, w.ID, w.Language, w.Level, w.Text); err != nil {
			return fmt.Errorf("word %d: %w", w.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importTexts(texts []TextBackup) error {
	query := "INSERT INTO texts (id, language, level, title, content) VALUES (?, ?, ?, ?, ?)"
	for _, t := range texts {
		if _, err := s.db.Exec(query, t.ID, t.Language, t.Level, t.Title, t.Content); err != nil {
			return fmt.Errorf("text %d: %w", t.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importQuestions(questions []QuestionBackup) error {
	query := `INSERT INTO questions (id, text_id, level, prompt, options, correct_option)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, q := range questions {
		if _, err := s.db.Exec(query, q.ID, q.TextID, q.Level, q.Prompt, q.Options, q.CorrectOption); err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSpeedGames(games []SpeedGameBackup) error {
	query := `INSERT INTO speed_games (id, user_id, player_id, level, language, words,
		word_count, total_time_ms, average_time_ms, wpm, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, g := range games {
		if _, err := s.db.Exec(query, g.ID, g.UserID, g.PlayerID, g.Level, g.Language,
			g.Words, g.WordCount, g.TotalTimeMs, g.AverageTimeMs, g.WPM, g.CreatedAt); err != nil {
			return fmt.Errorf("speed game %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importComprehensionGames(games []ComprehensionGameBackup) error {
	query := `INSERT INTO comprehension_games (id, user_id, player_id, text_id, level,
		language, text_content, word_count, reading_time_ms, average_reading_time_ms,
		total_questions, correct_answers, percentage, answer_times_ms,
		total_answer_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, g := range games {
		if _, err := s.db.Exec(query, g.ID, g.UserID, g.PlayerID, g.TextID, g.Level,
			g.Language, g.TextContent, g.WordCount, g.ReadingTimeMs, g.AverageReadingTimeMs,
			g.TotalQuestions, g.CorrectAnswers, g.Percentage, g.AnswerTimesMs,
			g.TotalAnswerTimeMs, g.CreatedAt); err != nil {
			return fmt.Errorf("comprehension game %d: %w", g.ID, err)
		}
	}
	return nil
}
