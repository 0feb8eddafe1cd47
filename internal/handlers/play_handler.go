package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/security"
	"github.com/dortega/velocilector/internal/service"
)

// PlayHandler exposes the game session as a small JSON API driven by the
// play page. One live session exists per authenticated browser session.
type PlayHandler struct {
	gameService   *service.GameService
	playerService *service.PlayerService
	csrf          *security.CSRFGenerator
	templates     *template.Template
}

// NewPlayHandler creates a new play handler
func NewPlayHandler(gameService *service.GameService, playerService *service.PlayerService, csrf *security.CSRFGenerator, templates *template.Template) *PlayHandler {
	return &PlayHandler{
		gameService:   gameService,
		playerService: playerService,
		csrf:          csrf,
		templates:     templates,
	}
}

// ShowPlay renders the play page for a player and mode
func (h *PlayHandler) ShowPlay(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	mode := r.URL.Query().Get("mode")
	if mode != string(game.ModeComprehension) {
		mode = string(game.ModeSpeed)
	}

	data := PlayViewData{
		Title: "Jugar - Velocilector",
		User:  user,
		Mode:  mode,
	}

	if playerParam := r.URL.Query().Get("player"); playerParam != "" {
		playerID, err := parseID(playerParam)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		player, err := h.playerService.GetPlayer(user.ID, playerID)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		data.Player = player
		data.Level = player.ReadingLevel
	}

	sessionID := GetSessionIDFromContext(r.Context())
	if token, err := h.csrf.GenerateToken(sessionID); err == nil {
		data.CSRFToken = token
	} else {
		log.Printf("Error generating CSRF token: %v", err)
	}

	if err := h.templates.ExecuteTemplate(w, "play.tmpl", data); err != nil {
		log.Printf("Error rendering play template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

type startGameRequest struct {
	Mode     string `json:"mode"`
	PlayerID int64  `json:"player_id"`
	Level    int    `json:"level"`
	Language string `json:"language"`
}

// StartGame creates and starts a new session, replacing any previous one
func (h *PlayHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	key := GetSessionIDFromContext(r.Context())

	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	mode := game.ModeSpeed
	if req.Mode == string(game.ModeComprehension) {
		mode = game.ModeComprehension
	}
	if req.Language == "" {
		req.Language = "es"
	}

	view, err := h.gameService.StartGame(r.Context(), key, user.ID, mode, req.PlayerID, req.Level, req.Language)
	if err != nil {
		if errors.Is(err, game.ErrContentUnavailable) {
			// The session survives in the error phase, show it to the player
			respondWithJSON(w, http.StatusOK, newGameStateResponse(view))
			return
		}
		respondWithJSONError(w, http.StatusBadRequest, err.Error(), "Error starting game", err)
		return
	}

	respondWithJSON(w, http.StatusOK, newGameStateResponse(view))
}

// Tap advances the presentation on a player tap
func (h *PlayHandler) Tap(w http.ResponseWriter, r *http.Request) {
	h.applyGameOp(w, r, h.gameService.Tap)
}

// Pause suspends auto-advance
func (h *PlayHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.applyGameOp(w, r, h.gameService.Pause)
}

// Resume re-arms auto-advance
func (h *PlayHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.applyGameOp(w, r, h.gameService.Resume)
}

// Restart replays the same configuration from the intro screen
func (h *PlayHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.applyGameOp(w, r, h.gameService.Restart)
}

// NextQuestion advances past the current question
func (h *PlayHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	h.applyGameOp(w, r, h.gameService.NextQuestion)
}

type answerRequest struct {
	Option int `json:"option"`
}

// SelectAnswer records the chosen option for the current question
func (h *PlayHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	key := GetSessionIDFromContext(r.Context())

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	view, err := h.gameService.SelectAnswer(key, req.Option)
	if err != nil {
		h.gameError(w, view, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newGameStateResponse(view))
}

// GameState returns the current session view
func (h *PlayHandler) GameState(w http.ResponseWriter, r *http.Request) {
	key := GetSessionIDFromContext(r.Context())

	view, err := h.gameService.Snapshot(key)
	if err != nil {
		h.gameError(w, view, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newGameStateResponse(view))
}

// EndGame tears down the session
func (h *PlayHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	key := GetSessionIDFromContext(r.Context())

	h.gameService.EndGame(key)
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (h *PlayHandler) applyGameOp(w http.ResponseWriter, r *http.Request, op func(string) (game.View, error)) {
	key := GetSessionIDFromContext(r.Context())

	view, err := op(key)
	if err != nil {
		h.gameError(w, view, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newGameStateResponse(view))
}

func (h *PlayHandler) gameError(w http.ResponseWriter, view game.View, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, game.ErrSessionDone):
		respondWithJSONError(w, http.StatusNotFound, "No hay partida activa", "", nil)
	case errors.Is(err, game.ErrWrongPhase):
		// Stale client, hand back the authoritative state
		resp := newGameStateResponse(view)
		respondWithJSON(w, http.StatusConflict, resp)
	case errors.Is(err, game.ErrInvalidOption):
		respondWithJSONError(w, http.StatusBadRequest, "Opción no válida", "", nil)
	default:
		respondWithJSONError(w, http.StatusInternalServerError, ErrInternalServerError, "Game operation failed", err)
	}
}
