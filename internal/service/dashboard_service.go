package service

import (
	"fmt"

	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/validation"
)

// leaderboardSize caps each leaderboard at the top players shown
const leaderboardSize = 5

// progressWindow is how many recent games feed the progress charts
const progressWindow = 30

// gameHistory is the slice of the game repository the dashboard needs
type gameHistory interface {
	GetSpeedStats(playerID int64) (*models.SpeedStats, error)
	GetComprehensionStats(playerID int64) (*models.ComprehensionStats, error)
	GetSpeedProgress(playerID int64, limit int) ([]models.ProgressPoint, error)
	GetComprehensionProgress(playerID int64, limit int) ([]models.ProgressPoint, error)
	GetSpeedLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error)
	GetComprehensionLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error)
}

// PlayerDashboard bundles everything the per-player dashboard page shows
type PlayerDashboard struct {
	Player                *models.Player
	Speed                 *models.SpeedStats
	Comprehension         *models.ComprehensionStats
	SpeedProgress         []models.ProgressPoint
	ComprehensionProgress []models.ProgressPoint
}

// DashboardService assembles player statistics and leaderboards
type DashboardService struct {
	games   gameHistory
	players *PlayerService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(games gameHistory, players *PlayerService) *DashboardService {
	return &DashboardService{games: games, players: players}
}

// PlayerDashboard aggregates one player's stats and progress series
func (s *DashboardService) PlayerDashboard(userID, playerID int64) (*PlayerDashboard, error) {
	player, err := s.players.GetPlayer(userID, playerID)
	if err != nil {
		return nil, err
	}

	speed, err := s.games.GetSpeedStats(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get speed stats: %w", err)
	}
	comprehension, err := s.games.GetComprehensionStats(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comprehension stats: %w", err)
	}
	speedProgress, err := s.games.GetSpeedProgress(playerID, progressWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to get speed progress: %w", err)
	}
	comprehensionProgress, err := s.games.GetComprehensionProgress(playerID, progressWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to get comprehension progress: %w", err)
	}

	return &PlayerDashboard{
		Player:                player,
		Speed:                 speed,
		Comprehension:         comprehension,
		SpeedProgress:         speedProgress,
		ComprehensionProgress: comprehensionProgress,
	}, nil
}

// Leaderboard builds both top-5 boards for a level/language pair. Speed
// ranks by average WPM across games; comprehension by best percentage.
func (s *DashboardService) Leaderboard(language string, level int) (*models.Leaderboard, error) {
	if err := validation.ValidateReadingLevel(level); err != nil {
		return nil, err
	}
	if err := validation.ValidateLanguage(language); err != nil {
		return nil, err
	}

	speedLeaders, err := s.games.GetSpeedLeaders(language, level, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get speed leaders: %w", err)
	}
	comprehensionLeaders, err := s.games.GetComprehensionLeaders(language, level, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get comprehension leaders: %w", err)
	}

	return &models.Leaderboard{
		Level:                level,
		Language:             language,
		SpeedLeaders:         speedLeaders,
		ComprehensionLeaders: comprehensionLeaders,
	}, nil
}
