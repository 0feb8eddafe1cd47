package service

import (
	"testing"

	"github.com/dortega/velocilector/internal/models"
)

type stubGameHistory struct {
	speedLeaders         []models.LeaderboardEntry
	comprehensionLeaders []models.LeaderboardEntry
}

func (s *stubGameHistory) GetSpeedStats(playerID int64) (*models.SpeedStats, error) {
	return &models.SpeedStats{}, nil
}

func (s *stubGameHistory) GetComprehensionStats(playerID int64) (*models.ComprehensionStats, error) {
	return &models.ComprehensionStats{}, nil
}

func (s *stubGameHistory) GetSpeedProgress(playerID int64, limit int) ([]models.ProgressPoint, error) {
	return nil, nil
}

func (s *stubGameHistory) GetComprehensionProgress(playerID int64, limit int) ([]models.ProgressPoint, error) {
	return nil, nil
}

func (s *stubGameHistory) GetSpeedLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error) {
	if limit < len(s.speedLeaders) {
		return s.speedLeaders[:limit], nil
	}
	return s.speedLeaders, nil
}

func (s *stubGameHistory) GetComprehensionLeaders(language string, level, limit int) ([]models.LeaderboardEntry, error) {
	if limit < len(s.comprehensionLeaders) {
		return s.comprehensionLeaders[:limit], nil
	}
	return s.comprehensionLeaders, nil
}

func TestLeaderboardTopFive(t *testing.T) {
	history := &stubGameHistory{}
	for i := 1; i <= 8; i++ {
		history.speedLeaders = append(history.speedLeaders, models.LeaderboardEntry{
			Position: i, PlayerID: int64(i), Value: 200 - i,
		})
	}

	svc := NewDashboardService(history, nil)
	board, err := svc.Leaderboard("es", 4)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	if len(board.SpeedLeaders) != 5 {
		t.Errorf("speed leaders = %d, want 5", len(board.SpeedLeaders))
	}
	if board.Level != 4 || board.Language != "es" {
		t.Errorf("board metadata = %d/%s, want 4/es", board.Level, board.Language)
	}
	if len(board.ComprehensionLeaders) != 0 {
		t.Errorf("comprehension leaders = %d, want 0", len(board.ComprehensionLeaders))
	}
}

func TestLeaderboardRejectsInvalidInput(t *testing.T) {
	svc := NewDashboardService(&stubGameHistory{}, nil)

	if _, err := svc.Leaderboard("es", 0); err == nil {
		t.Error("Leaderboard(es, 0) = nil error, want validation error")
	}
	if _, err := svc.Leaderboard("xx", 3); err == nil {
		t.Error("Leaderboard(xx, 3) = nil error, want validation error")
	}
}
