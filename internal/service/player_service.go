package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/dortega/velocilector/internal/avatar"
	"github.com/dortega/velocilector/internal/models"
	"github.com/dortega/velocilector/internal/repository"
	"github.com/dortega/velocilector/internal/validation"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotPlayerOwner = errors.New("player belongs to another account")
)

// PlayerService handles child profile management
type PlayerService struct {
	players *repository.PlayerRepository
	games   *repository.GameRepository
	avatars *avatar.Generator
}

// NewPlayerService creates a new player service
func NewPlayerService(players *repository.PlayerRepository, games *repository.GameRepository, avatars *avatar.Generator) *PlayerService {
	return &PlayerService{players: players, games: games, avatars: avatars}
}

// CreatePlayer validates and creates a profile, generating its avatar from
// the chosen traits. Avatar failures don't block creation; the profile
// just starts without an image.
func (s *PlayerService) CreatePlayer(userID int64, p *models.Player) (*models.Player, error) {
	if err := validation.ValidateName(p.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateReadingLevel(p.ReadingLevel); err != nil {
		return nil, err
	}
	if err := validation.ValidateLanguage(p.Language); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(p.Age); err != nil {
		return nil, err
	}

	p.UserID = userID
	p.AvatarURL = s.generateAvatar(p)

	created, err := s.players.CreatePlayer(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return created, nil
}

// GetPlayer fetches a profile, enforcing account ownership
func (s *PlayerService) GetPlayer(userID, playerID int64) (*models.Player, error) {
	p, err := s.players.GetPlayerByID(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p.UserID != userID {
		return nil, ErrNotPlayerOwner
	}
	return p, nil
}

// ListPlayers returns all profiles under an account
func (s *PlayerService) ListPlayers(userID int64) ([]models.Player, error) {
	players, err := s.players.GetPlayersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// ListPlayersWithStats decorates each profile with headline figures for
// the player picker
func (s *PlayerService) ListPlayersWithStats(userID int64) ([]models.PlayerWithStats, error) {
	players, err := s.ListPlayers(userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.PlayerWithStats, 0, len(players))
	for _, p := range players {
		speed, err := s.games.GetSpeedStats(p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get speed stats for player %d: %w", p.ID, err)
		}
		comprehension, err := s.games.GetComprehensionStats(p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comprehension stats for player %d: %w", p.ID, err)
		}
		result = append(result, models.PlayerWithStats{
			Player:             p,
			SpeedGames:         speed.TotalGames,
			ComprehensionGames: comprehension.TotalGames,
			BestWPM:            speed.BestSpeed,
			BestScore:          comprehension.BestScore,
		})
	}
	return result, nil
}

// UpdatePlayer applies profile edits, regenerating the avatar when the
// traits changed
func (s *PlayerService) UpdatePlayer(userID int64, updated *models.Player) (*models.Player, error) {
	current, err := s.GetPlayer(userID, updated.ID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateName(updated.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateReadingLevel(updated.ReadingLevel); err != nil {
		return nil, err
	}
	if err := validation.ValidateLanguage(updated.Language); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(updated.Age); err != nil {
		return nil, err
	}

	updated.UserID = userID
	if traitsChanged(current, updated) {
		updated.AvatarURL = s.generateAvatar(updated)
	} else {
		updated.AvatarURL = current.AvatarURL
	}

	if err := s.players.UpdatePlayer(updated); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return updated, nil
}

// SetReadingLevel moves a player to a new level
func (s *PlayerService) SetReadingLevel(userID, playerID int64, level int) error {
	if err := validation.ValidateReadingLevel(level); err != nil {
		return err
	}
	if _, err := s.GetPlayer(userID, playerID); err != nil {
		return err
	}
	if err := s.players.UpdateReadingLevel(playerID, level); err != nil {
		return fmt.Errorf("failed to set reading level: %w", err)
	}
	return nil
}

// DeletePlayer removes a profile and its game history
func (s *PlayerService) DeletePlayer(userID, playerID int64) error {
	if _, err := s.GetPlayer(userID, playerID); err != nil {
		return err
	}
	if err := s.players.DeletePlayer(playerID); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

func (s *PlayerService) generateAvatar(p *models.Player) string {
	if s.avatars == nil {
		return ""
	}
	filename, err := s.avatars.Generate(avatar.Traits{
		Gender:    p.Gender,
		HairColor: p.HairColor,
		HairStyle: p.HairStyle,
		SkinTone:  p.SkinTone,
		EyeColor:  p.EyeColor,
		Age:       p.Age,
	})
	if err != nil {
		log.Printf("Warning: failed to generate avatar for player %q: %v", p.Name, err)
		return ""
	}
	return "/static/avatars/" + filename
}

func traitsChanged(a, b *models.Player) bool {
	return a.Gender != b.Gender ||
		a.HairColor != b.HairColor ||
		a.HairStyle != b.HairStyle ||
		a.SkinTone != b.SkinTone ||
		a.EyeColor != b.EyeColor ||
		a.Age != b.Age
}
