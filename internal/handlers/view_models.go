package handlers

import (
	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/service"
)

type LoginViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Success        string
}

type RegisterViewData struct {
	Title          string
	OAuthProviders []OAuthProviderView
	Error          string
	Email          string
	Name           string
}

type ForgotPasswordViewData struct {
	Title   string
	Success string
	Error   string
}

type ResetPasswordViewData struct {
	Title string
	Token string
	Error string
}

type PlayersViewData struct {
	Title     string
	User      *models.User
	Players   []models.PlayerWithStats
	CSRFToken string
	Error     string
}

type PlayerFormViewData struct {
	Title         string
	User          *models.User
	Player        *models.Player
	SuggestedName string
	CSRFToken     string
	Error         string
}

type PlayViewData struct {
	Title     string
	User      *models.User
	Player    *models.Player
	Mode      string
	Level     int
	CSRFToken string
}

type DashboardViewData struct {
	Title     string
	User      *models.User
	Dashboard *service.PlayerDashboard
	Tier      string
	CSRFToken string
}

type LeaderboardViewData struct {
	Title       string
	User        *models.User
	Leaderboard *models.Leaderboard
	Levels      []int
	Languages   []string
}

type AdminViewData struct {
	Title     string
	User      *models.User
	Words     []models.Word
	Texts     []models.Text
	WordCount int
	CSRFToken string
	Error     string
	Success   string
}

// gameStateResponse is the JSON shape the play endpoints return.
type gameStateResponse struct {
	Phase    string              `json:"phase"`
	Mode     string              `json:"mode"`
	Paused   bool                `json:"paused"`
	UnitRef  string              `json:"unit_ref,omitempty"`
	Options  []string            `json:"options,omitempty"`
	Selected int                 `json:"selected"`
	Index    int                 `json:"index"`
	Total    int                 `json:"total"`
	Progress float64             `json:"progress"`
	Result   *gameResultResponse `json:"result,omitempty"`
}

type gameResultResponse struct {
	Mode  string `json:"mode"`
	Level int    `json:"level"`

	WordCount     int `json:"word_count,omitempty"`
	TotalTimeMs   int `json:"total_time_ms,omitempty"`
	AverageTimeMs int `json:"average_time_ms,omitempty"`
	WPM           int `json:"wpm,omitempty"`

	TotalQuestions int `json:"total_questions,omitempty"`
	CorrectAnswers int `json:"correct_answers"`
	Percentage     int `json:"percentage"`
	ReadingTimeMs  int `json:"reading_time_ms,omitempty"`
}

func newGameStateResponse(v game.View) gameStateResponse {
	resp := gameStateResponse{
		Phase:    string(v.Phase),
		Mode:     string(v.Mode),
		Paused:   v.Paused,
		UnitRef:  v.UnitRef,
		Options:  v.Options,
		Selected: v.Selected,
		Index:    v.Index,
		Total:    v.Total,
		Progress: v.Progress,
	}

	if v.Result != nil {
		result := &gameResultResponse{
			Mode:  string(v.Result.Mode),
			Level: v.Result.Level,
		}
		switch v.Result.Mode {
		case game.ModeSpeed:
			result.WordCount = v.Result.Speed.WordCount
			result.TotalTimeMs = v.Result.Speed.TotalTimeMs
			result.AverageTimeMs = v.Result.Speed.AverageTimeMs
			result.WPM = v.Result.Speed.WPM
		case game.ModeComprehension:
			result.TotalQuestions = v.Result.Comprehension.TotalQuestions
			result.CorrectAnswers = v.Result.Comprehension.CorrectAnswers
			result.Percentage = v.Result.Comprehension.Percentage
			result.ReadingTimeMs = v.Result.Comprehension.ReadingTimeMs
		}
		resp.Result = result
	}

	return resp
}
