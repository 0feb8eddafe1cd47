package models

import "time"

// Text is a reading passage used by the comprehension game
type Text struct {
	ID        int64
	Language  string
	Level     int
	Title     string
	Content   string
	CreatedAt time.Time
}

// Question is a multiple-choice question attached to a text
type Question struct {
	ID            int64
	TextID        int64
	Level         int
	Prompt        string
	Options       []string
	CorrectOption int // index into Options
	CreatedAt     time.Time
}

// TextWithQuestions bundles a passage with its ordered question list
type TextWithQuestions struct {
	Text      Text
	Questions []Question
}
