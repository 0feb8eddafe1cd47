package models

import "time"

// Player represents a child reading profile belonging to a parent account
type Player struct {
	ID           int64
	UserID       int64
	Name         string
	ReadingLevel int // 1-10, see game.TierForLevel
	Language     string
	Age          int
	Gender       string
	HairColor    string
	HairStyle    string
	SkinTone     string
	EyeColor     string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerWithStats combines a player with headline figures for list views
type PlayerWithStats struct {
	Player             Player
	SpeedGames         int
	ComprehensionGames int
	BestWPM            int
	BestScore          int
}
