package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dortega/velocilector/internal/game"
	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/repository"
	"github.com/dortega/velocilector/internal/validation"
)

var ErrNoActiveSession = errors.New("no active game session")

// GameService owns at most one live game session per authenticated
// session. Starting a new game with a different configuration tears down
// the previous session so a stale timer can never touch fresh state.
type GameService struct {
	mu       sync.Mutex
	sessions map[string]*liveSession // keyed by auth session ID

	content  *ContentService
	gameRepo *repository.GameRepository
	players  *PlayerService
}

type liveSession struct {
	session  *game.Session
	lastUsed time.Time
}

// NewGameService creates a new game service
func NewGameService(content *ContentService, gameRepo *repository.GameRepository, players *PlayerService) *GameService {
	return &GameService{
		sessions: make(map[string]*liveSession),
		content:  content,
		gameRepo: gameRepo,
		players:  players,
	}
}

// StartGame creates, loads and starts a session for the given mode, player
// and level. Any previous session under the same key is torn down first.
func (s *GameService) StartGame(ctx context.Context, key string, userID int64, mode game.Mode, playerID int64, level int, language string) (game.View, error) {
	if err := validation.ValidateReadingLevel(level); err != nil {
		return game.View{}, err
	}
	if err := validation.ValidateLanguage(language); err != nil {
		return game.View{}, err
	}
	if playerID != 0 {
		if _, err := s.players.GetPlayer(userID, playerID); err != nil {
			return game.View{}, err
		}
	}

	cfg := game.NewConfig(mode, level, language, userID, playerID)
	session := game.NewSession(cfg, s.content, s, nil)

	s.mu.Lock()
	if old, ok := s.sessions[key]; ok {
		old.session.Teardown()
	}
	s.sessions[key] = &liveSession{session: session, lastUsed: time.Now()}
	s.mu.Unlock()

	if err := session.Load(ctx); err != nil {
		return session.Snapshot(), err
	}
	if err := session.Start(); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}

// Tap forwards the player's advance signal
func (s *GameService) Tap(key string) (game.View, error) {
	return s.apply(key, (*game.Session).Tap)
}

// Pause suspends auto-advance
func (s *GameService) Pause(key string) (game.View, error) {
	return s.apply(key, (*game.Session).Pause)
}

// Resume re-arms auto-advance with the full delay
func (s *GameService) Resume(key string) (game.View, error) {
	return s.apply(key, (*game.Session).Resume)
}

// SelectAnswer records an answer choice for the current question
func (s *GameService) SelectAnswer(key string, option int) (game.View, error) {
	session, err := s.lookup(key)
	if err != nil {
		return game.View{}, err
	}
	if err := session.SelectAnswer(option); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}

// NextQuestion advances past the current question
func (s *GameService) NextQuestion(key string) (game.View, error) {
	return s.apply(key, (*game.Session).NextQuestion)
}

// Restart replays the same configuration from the intro screen
func (s *GameService) Restart(key string) (game.View, error) {
	return s.apply(key, (*game.Session).Restart)
}

// Snapshot returns the current session view
func (s *GameService) Snapshot(key string) (game.View, error) {
	session, err := s.lookup(key)
	if err != nil {
		return game.View{}, err
	}
	return session.Snapshot(), nil
}

// EndGame tears down and forgets the session
func (s *GameService) EndGame(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if live, ok := s.sessions[key]; ok {
		live.session.Teardown()
		delete(s.sessions, key)
	}
}

// ExpireIdleSessions tears down sessions untouched for longer than maxIdle.
// Clients that close the tab never call EndGame, so this runs on a schedule.
func (s *GameService) ExpireIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for key, live := range s.sessions {
		if live.lastUsed.Before(cutoff) {
			live.session.Teardown()
			delete(s.sessions, key)
			expired++
		}
	}
	return expired
}

func (s *GameService) lookup(key string) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	live, ok := s.sessions[key]
	if !ok {
		return nil, ErrNoActiveSession
	}
	live.lastUsed = time.Now()
	return live.session, nil
}

func (s *GameService) apply(key string, op func(*game.Session) error) (game.View, error) {
	session, err := s.lookup(key)
	if err != nil {
		return game.View{}, err
	}
	if err := op(session); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}

// SaveSessionResult persists a finished run. It implements
// game.PersistenceGateway; sessions call it once on reaching the finished
// phase.
func (s *GameService) SaveSessionResult(ctx context.Context, r *game.Result) error {
	switch r.Mode {
	case game.ModeSpeed:
		_, err := s.gameRepo.CreateSpeedGame(&models.SpeedGame{
			UserID:        r.UserID,
			PlayerID:      r.PlayerID,
			Level:         r.Level,
			Language:      r.Language,
			Words:         r.Words,
			WordCount:     r.Speed.WordCount,
			TotalTimeMs:   r.Speed.TotalTimeMs,
			AverageTimeMs: r.Speed.AverageTimeMs,
			WPM:           r.Speed.WPM,
		})
		if err != nil {
			return fmt.Errorf("failed to save speed game: %w", err)
		}
	case game.ModeComprehension:
		_, err := s.gameRepo.CreateComprehensionGame(&models.ComprehensionGame{
			UserID:               r.UserID,
			PlayerID:             r.PlayerID,
			TextID:               r.TextID,
			Level:                r.Level,
			Language:             r.Language,
			TextContent:          r.TextContent,
			WordCount:            r.TextWordCount,
			ReadingTimeMs:        r.Comprehension.ReadingTimeMs,
			AverageReadingTimeMs: r.Comprehension.AverageReadingTimeMs,
			TotalQuestions:       r.Comprehension.TotalQuestions,
			CorrectAnswers:       r.Comprehension.CorrectAnswers,
			Percentage:           r.Comprehension.Percentage,
			AnswerTimesMs:        r.Comprehension.AnswerTimesMs,
			TotalAnswerTimeMs:    r.Comprehension.TotalAnswerTimeMs,
		})
		if err != nil {
			return fmt.Errorf("failed to save comprehension game: %w", err)
		}
	default:
		return fmt.Errorf("unknown game mode %q", r.Mode)
	}
	return nil
}
