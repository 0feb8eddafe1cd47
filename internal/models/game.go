package models

import "time"

// SpeedGame is one persisted speed-reading session result
type SpeedGame struct {
	ID            int64
	UserID        int64
	PlayerID      int64
	Level         int
	Language      string
	Words         []string // presented words, stored as JSON
	WordCount     int
	TotalTimeMs   int
	AverageTimeMs int
	WPM           int
	CreatedAt     time.Time
}

// ComprehensionGame is one persisted comprehension session result
type ComprehensionGame struct {
	ID                   int64
	UserID               int64
	PlayerID             int64
	TextID               int64
	Level                int
	Language             string
	TextContent          string
	WordCount            int
	ReadingTimeMs        int
	AverageReadingTimeMs int
	TotalQuestions       int
	CorrectAnswers       int
	Percentage           int
	AnswerTimesMs        []int // per-question answer durations, stored as JSON
	TotalAnswerTimeMs    int
	CreatedAt            time.Time
}
