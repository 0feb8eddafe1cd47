package models

import "time"

// SpeedStats summarises a player's speed-reading history
type SpeedStats struct {
	TotalGames   int
	TotalWords   int
	AverageSpeed int // WPM
	BestSpeed    int // WPM
	TotalTimeMs  int
}

// ComprehensionStats summarises a player's comprehension history
type ComprehensionStats struct {
	TotalGames         int
	TotalQuestions     int
	AverageScore       int // percentage
	BestScore          int // percentage
	TotalReadingTimeMs int
}

// ProgressPoint is one entry in a dashboard progress series
type ProgressPoint struct {
	Date  time.Time
	Value int // WPM or percentage depending on the series
	Count int // words or questions in that game
	Level int
}

// LeaderboardEntry is one row of a per-level leaderboard
type LeaderboardEntry struct {
	Position   int
	PlayerID   int64
	PlayerName string
	Value      int // average WPM or best percentage
	TotalGames int
}

// Leaderboard holds both game leaderboards for one level/language pair
type Leaderboard struct {
	Level                int
	Language             string
	SpeedLeaders         []LeaderboardEntry
	ComprehensionLeaders []LeaderboardEntry
}
