package models

import "time"

// Word is one entry in the speed-reading word catalogue
type Word struct {
	ID        int64
	Language  string
	Level     int // 1-10 difficulty ordinal
	Text      string
	CreatedAt time.Time
}
