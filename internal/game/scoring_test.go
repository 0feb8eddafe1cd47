package game

import (
	"testing"
	"time"

	"github.com/dortega/velocilector/internal/models"
)

func closedRecords(durationsMs ...int) []TimingRecord {
	records := make([]TimingRecord, len(durationsMs))
	at := time.Unix(0, 0)
	for i, ms := range durationsMs {
		d := time.Duration(ms) * time.Millisecond
		records[i] = TimingRecord{StartedAt: at, EndedAt: at.Add(d)}
		at = at.Add(d)
	}
	return records
}

func TestScoreSpeed(t *testing.T) {
	tests := []struct {
		name        string
		durationsMs []int
		wantAvg     int
		wantWPM     int
	}{
		{
			name:        "one word per second",
			durationsMs: []int{1000, 1000, 1000},
			wantAvg:     1000,
			wantWPM:     60,
		},
		{
			name:        "fast reader",
			durationsMs: []int{400, 600, 500, 500},
			wantAvg:     500,
			wantWPM:     120,
		},
		{
			name:        "fractional average rounds half up",
			durationsMs: []int{700, 800}, // avg 750 -> WPM 80
			wantAvg:     750,
			wantWPM:     80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreSpeed(closedRecords(tt.durationsMs...))
			if score.WordCount != len(tt.durationsMs) {
				t.Errorf("WordCount = %d, want %d", score.WordCount, len(tt.durationsMs))
			}
			if score.AverageTimeMs != tt.wantAvg {
				t.Errorf("AverageTimeMs = %d, want %d", score.AverageTimeMs, tt.wantAvg)
			}
			if score.WPM != tt.wantWPM {
				t.Errorf("WPM = %d, want %d", score.WPM, tt.wantWPM)
			}
		})
	}
}

func TestScoreSpeedZeroUnits(t *testing.T) {
	score := ScoreSpeed(nil)
	if score != (SpeedScore{}) {
		t.Errorf("zero-unit session should score zero, got %+v", score)
	}
}

func TestScoreComprehension(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectOption: 1, Options: []string{"a", "b", "c"}},
		{ID: 2, CorrectOption: 2, Options: []string{"a", "b", "c"}},
	}
	answers := []AnswerRecord{
		{QuestionID: 1, Selected: 1}, // correct
		{QuestionID: 2, Selected: 0}, // wrong
	}

	reading := closedRecords(200, 300, 250, 250) // 1000ms over 4 words
	answering := closedRecords(3000, 5000)

	score := ScoreComprehension(reading, answering, questions, answers)

	if score.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", score.CorrectAnswers)
	}
	if score.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", score.Percentage)
	}
	if score.ReadingTimeMs != 1000 {
		t.Errorf("ReadingTimeMs = %d, want 1000", score.ReadingTimeMs)
	}
	if score.AverageReadingTimeMs != 250 {
		t.Errorf("AverageReadingTimeMs = %d, want 250", score.AverageReadingTimeMs)
	}
	if score.TotalAnswerTimeMs != 8000 {
		t.Errorf("TotalAnswerTimeMs = %d, want 8000", score.TotalAnswerTimeMs)
	}
	if score.AverageAnswerTimeMs != 4000 {
		t.Errorf("AverageAnswerTimeMs = %d, want 4000", score.AverageAnswerTimeMs)
	}
}

func TestScoreComprehensionUnansweredCountsWrong(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectOption: 0},
		{ID: 2, CorrectOption: 0},
		{ID: 3, CorrectOption: 0},
	}
	answers := []AnswerRecord{
		{QuestionID: 1, Selected: 0},
		{QuestionID: 2, Selected: NoSelection},
		{QuestionID: 3, Selected: 0},
	}

	score := ScoreComprehension(nil, nil, questions, answers)
	if score.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", score.CorrectAnswers)
	}
	if score.Percentage != 67 { // 66.67 rounds up
		t.Errorf("Percentage = %d, want 67", score.Percentage)
	}
}

func TestScoreDeterminism(t *testing.T) {
	records := closedRecords(123, 456, 789)

	first := ScoreSpeed(records)
	for i := 0; i < 5; i++ {
		if got := ScoreSpeed(records); got != first {
			t.Fatalf("ScoreSpeed not deterministic: %+v vs %+v", got, first)
		}
	}
}
