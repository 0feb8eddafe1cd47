package handlers

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/dortega/velocilector/internal/credentials"
	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
)

// PlayerHandler handles reader-profile management for a parent account
type PlayerHandler struct {
	playerService *service.PlayerService
	csrf          *security.CSRFGenerator
	templates     *template.Template
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *service.PlayerService, csrf *security.CSRFGenerator, templates *template.Template) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		csrf:          csrf,
		templates:     templates,
	}
}

func (h *PlayerHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s template: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

func (h *PlayerHandler) csrfToken(ctx context.Context) string {
	sessionID := GetSessionIDFromContext(ctx)
	token, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
		return ""
	}
	return token
}

// ListPlayers renders the player selection page with headline stats
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	players, err := h.playerService.ListPlayersWithStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing players", err)
		return
	}

	h.render(w, "players.tmpl", PlayersViewData{
		Title:     "Lectores - Velocilector",
		User:      user,
		Players:   players,
		CSRFToken: h.csrfToken(r.Context()),
	})
}

// ShowNewPlayer renders the new player form with a suggested name
func (h *PlayerHandler) ShowNewPlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	suggested, err := credentials.GeneratePlayerName("es")
	if err != nil {
		log.Printf("Error generating player name: %v", err)
	}

	h.render(w, "player_form.tmpl", PlayerFormViewData{
		Title:         "Nuevo lector - Velocilector",
		User:          user,
		SuggestedName: suggested,
		CSRFToken:     h.csrfToken(r.Context()),
	})
}

// SuggestName returns a fresh generated player name as JSON
func (h *PlayerHandler) SuggestName(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "es"
	}

	name, err := credentials.GeneratePlayerName(language)
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Error generating player name", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"name": name})
}

// CreatePlayer handles the new player form submission
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	player, err := h.playerFromForm(r)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if _, err := h.playerService.CreatePlayer(user.ID, player); err != nil {
		h.render(w, "player_form.tmpl", PlayerFormViewData{
			Title:     "Nuevo lector - Velocilector",
			User:      user,
			Player:    player,
			CSRFToken: h.csrfToken(r.Context()),
			Error:     err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

// ShowEditPlayer renders the edit form for one player
func (h *PlayerHandler) ShowEditPlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	player, err := h.playerService.GetPlayer(user.ID, playerID)
	if err != nil {
		h.playerError(w, r, err)
		return
	}

	h.render(w, "player_form.tmpl", PlayerFormViewData{
		Title:     "Editar lector - Velocilector",
		User:      user,
		Player:    player,
		CSRFToken: h.csrfToken(r.Context()),
	})
}

// UpdatePlayer handles the edit form submission
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	player, err := h.playerFromForm(r)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	player.ID = playerID

	if _, err := h.playerService.UpdatePlayer(user.ID, player); err != nil {
		h.playerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

// SetLevel updates a player's reading level from the dashboard
func (h *PlayerHandler) SetLevel(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	level, err := strconv.Atoi(r.FormValue("level"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if err := h.playerService.SetReadingLevel(user.ID, playerID, level); err != nil {
		h.playerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/players/"+strconv.FormatInt(playerID, 10)+"/dashboard", http.StatusSeeOther)
}

// DeletePlayer removes a player profile and its avatar
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	playerID, err := parseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.playerService.DeletePlayer(user.ID, playerID); err != nil {
		h.playerError(w, r, err)
		return
	}

	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

func (h *PlayerHandler) playerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrNotPlayerOwner):
		respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Player operation failed", err)
	}
}

func (h *PlayerHandler) playerFromForm(r *http.Request) (*models.Player, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	level, err := strconv.Atoi(r.FormValue("reading_level"))
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(r.FormValue("age"))
	if err != nil {
		return nil, err
	}

	return &models.Player{
		Name:         r.FormValue("name"),
		ReadingLevel: level,
		Language:     r.FormValue("language"),
		Age:          age,
		Gender:       r.FormValue("gender"),
		HairColor:    r.FormValue("hair_color"),
		HairStyle:    r.FormValue("hair_style"),
		SkinTone:     r.FormValue("skin_tone"),
		EyeColor:     r.FormValue("eye_color"),
	}, nil
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
