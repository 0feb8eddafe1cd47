package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
)

// DashboardHandler renders player progress pages and the leaderboard
type DashboardHandler struct {
	dashboardService *service.DashboardService
	csrf             *security.CSRFGenerator
	templates        *template.Template
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, csrf *security.CSRFGenerator, templates *template.Template) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		csrf:             csrf,
		templates:        templates,
	}
}

func (h *DashboardHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// PlayerDashboard renders one player's statistics and progress charts
func (h *DashboardHandler) PlayerDashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	dashboard, err := h.dashboardService.PlayerDashboard(user.ID, playerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrNotPlayerOwner):
			respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error building dashboard", err)
		}
		return
	}

	sessionID := GetSessionIDFromContext(r.Context())
	token, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
	}

	h.render(w, "dashboard.tmpl", DashboardViewData{
		Title:     dashboard.Player.Name + " - Velocilector",
		User:      user,
		Dashboard: dashboard,
		Tier:      string(game.TierForLevel(dashboard.Player.ReadingLevel)),
		CSRFToken: token,
	})
}

// Leaderboard renders the per-level leaderboard page
func (h *DashboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	language := r.URL.Query().Get("language")
	if language == "" {
		language = "es"
	}
	level := 1
	if levelParam := r.URL.Query().Get("level"); levelParam != "" {
		parsed, err := strconv.Atoi(levelParam)
		if err != nil {
			http.Error(w, "Invalid level", http.StatusBadRequest)
			return
		}
		level = parsed
	}

	leaderboard, err := h.dashboardService.Leaderboard(language, level)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "Error building leaderboard", err)
		return
	}

	h.render(w, "leaderboard.tmpl", LeaderboardViewData{
		Title:       "Clasificación - Velocilector",
		User:        user,
		Leaderboard: leaderboard,
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Languages:   []string{"es", "en"},
	})
}
