package repository

import (
	"encoding/json"
	"fmt"

	"github.com/dortega/velocilector/internal/database"
	"github.com/dortega/velocilector/internal/models"
)

// GameRepository handles database operations for finished game results
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateSpeedGame persists one speed-reading session result. The presented
// word list is stored as a JSON array.
func (r *GameRepository) CreateSpeedGame(g *models.SpeedGame) (*models.SpeedGame, error) {
	words, err := json.Marshal(g.Words)
	if err != nil {
		return nil, fmt.Errorf("failed to encode words: %w", err)
	}

	query := `
		INSERT INTO speed_games (user_id, player_id, level, language, words,
			word_count, total_time_ms, average_time_ms, wpm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		g.UserID, g.PlayerID, g.Level, g.Language, string(words),
		g.WordCount, g.TotalTimeMs, g.AverageTimeMs, g.WPM)
	if err != nil {
		return nil, fmt.Errorf("failed to create speed game: %w", err)
	}

	created := *g
	created.ID = id
	return &created, nil
}

// CreateComprehensionGame persists one comprehension session result
func (r *GameRepository) CreateComprehensionGame(g *models.ComprehensionGame) (*models.ComprehensionGame, error) {
	answerTimes, err := json.Marshal(g.AnswerTimesMs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer times: %w", err)
	}

	query := `
		INSERT INTO comprehension_games (user_id, player_id, text_id, level, language,
			text_content, word_count, reading_time_ms, average_reading_time_ms,
			total_questions, correct_answers, percentage, answer_times_ms, total_answer_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		g.UserID, g.PlayerID, g.TextID, g.Level, g.Language,
		g.TextContent, g.WordCount, g.ReadingTimeMs, g.AverageReadingTimeMs,
		g.TotalQuestions, g.CorrectAnswers, g.Percentage, string(answerTimes), g.TotalAnswerTimeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to create comprehension game: %w", err)
	}

	created := *g
	created.ID = id
	return &created, nil
}

// GetSpeedGamesByPlayer returns a player's speed games, newest first
func (r *GameRepository) GetSpeedGamesByPlayer(playerID int64, limit int) ([]models.SpeedGame, error) {
	query := `
		SELECT id, user_id, player_id, level, language, words,
			word_count, total_time_ms, average_time_ms, wpm, created_at
		FROM speed_games
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query speed games: %w", err)
	}
	defer rows.Close()

	var games []models.SpeedGame
	for rows.Next() {
		var g models.SpeedGame
		var words string
		if err := rows.Scan(&g.ID, &g.UserID, &g.PlayerID, &g.Level, &g.Language, &words,
			&g.WordCount, &g.TotalTimeMs, &g.AverageTimeMs, &g.WPM, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan speed game: %w", err)
		}
		if err := json.Unmarshal([]byte(words), &g.Words); err != nil {
			return nil, fmt.Errorf("failed to decode words for game %d: %w", g.ID, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetComprehensionGamesByPlayer returns a player's comprehension games, newest first
func (r *GameRepository) GetComprehensionGamesByPlayer(playerID int64, limit int) ([]models.ComprehensionGame, error) {
	query := `
		SELECT id, user_id, player_id, text_id, level, language,
			text_content, word_count, reading_time_ms, average_reading_time_ms,
			total_questions, correct_answers, percentage, answer_times_ms,
			total_answer_time_ms, created_at
		FROM comprehension_games
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comprehension games: %w", err)
	}
	defer rows.Close()

	var games []models.ComprehensionGame
	for rows.Next() {
		var g models.ComprehensionGame
		var answerTimes string
		if err := rows.Scan(&g.ID, &g.UserID, &g.PlayerID, &g.TextID, &g.Level, &g.Language,
			&g.TextContent, &g.WordCount, &g.ReadingTimeMs, &g.AverageReadingTimeMs,
			&g.TotalQuestions, &g.CorrectAnswers, &g.Percentage, &answerTimes,
			&g.TotalAnswerTimeMs, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comprehension game: %w", err)
		}
		if err := json.Unmarshal([]byte(answerTimes), &g.AnswerTimesMs); err != nil {
			return nil, fmt.Errorf("failed to decode answer times for game %d: %w", g.ID, err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetSpeedStats aggregates a player's speed-reading history
func (r *GameRepository) GetSpeedStats(playerID int64) (*models.SpeedStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(word_count), 0),
			COALESCE(AVG(wpm), 0),
			COALESCE(MAX(wpm), 0),
			COALESCE(SUM(total_time_ms), 0)
		FROM speed_games
		WHERE player_id = ?
	`
	stats := &models.SpeedStats{}
	var avg float64
	err := r.db.QueryRow(query, playerID).Scan(
		&stats.TotalGames, &stats.TotalWords, &avg, &stats.BestSpeed, &stats.TotalTimeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to get speed stats: %w", err)
	}
	stats.AverageSpeed = int(avg + 0.5)
	return stats, nil
}

// GetComprehensionStats aggregates a player's comprehension history
func (r *GameRepository) GetComprehensionStats(playerID int64) (*models.ComprehensionStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total_questions), 0),
			COALESCE(AVG(percentage), 0),
			COALESCE(MAX(percentage), 0),
			COALESCE(SUM(reading_time_ms), 0)
		FROM comprehension_games
		WHERE player_id = ?
	`
	stats := &models.ComprehensionStats{}
	var avg float64
	err := r.db.QueryRow(query, playerID).Scan(
		&stats.TotalGames, &stats.TotalQuestions, &avg, &stats.BestScore, &stats.TotalReadingTimeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to get comprehension stats: %w", err)
	}
	stats.AverageScore = int(avg + 0.5)
	return stats, nil
}

// GetSpeedProgress returns the WPM series for a player's recent games,
// oldest first, for the dashboard progress chart
func (r *GameRepository) GetSpeedProgress(playerID int64, limit int) ([]models.ProgressPoint, error) {
	query := `
		SELECT created_at, wpm, word_count, level
		FROM speed_games
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	points, err := r.queryProgress(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query speed progress: %w", err)
	}
	return points, nil
}

// GetComprehensionProgress returns the percentage series for a player's
// recent games, oldest first
func (r *GameRepository) GetComprehensionProgress(playerID int64, limit int) ([]models.ProgressPoint, error) {
	query := `
		SELECT created_at, percentage, total_questions, level
		FROM comprehension_games
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	points, err := r.queryProgress(query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comprehension progress: %w", err)
	}
	return points, nil
}

func (r *GameRepository) queryProgress(query string, playerID int64, limit int) ([]models.ProgressPoint, error) {
	rows, err := r.db.Query(query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.ProgressPoint
	for rows.Next() {
		var p models.ProgressPoint
		if err := rows.Scan(&p.Date, &p.Value, &p.Count, &p.Level); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest-first from the query; charts want oldest-first.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// GetSpeedLeaders ranks players at a level/language by their average WPM
func (r *GameRepository) GetSpeedLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.name, AVG(g.wpm), COUNT(*)
		FROM speed_games g
		JOIN players p ON p.id = g.player_id
		WHERE g.language = ? AND g.level = ?
		GROUP BY p.id, p.name
		ORDER BY AVG(g.wpm) DESC
		LIMIT ?
	`
	return r.queryLeaders(query, language, level, limit)
}

// GetComprehensionLeaders ranks players at a level/language by their best
// percentage score
func (r *GameRepository) GetComprehensionLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT p.id, p.name, MAX(g.percentage), COUNT(*)
		FROM comprehension_games g
		JOIN players p ON p.id = g.player_id
		WHERE g.language = ? AND g.level = ?
		GROUP BY p.id, p.name
		ORDER BY MAX(g.percentage) DESC
		LIMIT ?
	`
	return r.queryLeaders(query, language, level, limit)
}

func (r *GameRepository) queryLeaders(query, language string, level, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Query(query, language, level, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var value float64
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &value, &e.TotalGames); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Value = int(value + 0.5)
		e.Position = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
