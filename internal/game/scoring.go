package game

import (
	"math"

	"github.com/dortega/velocilector/internal/models"
)

// NoSelection marks a question that has not been answered yet.
const NoSelection = -1

// AnswerRecord holds the selection for one comprehension question. Mutable
// until the question's timing record closes.
type AnswerRecord struct {
	QuestionID int64
	Selected   int // option index, NoSelection until the player picks one
}

// SpeedScore is the derived result of a finished speed session.
type SpeedScore struct {
	WordCount     int
	TotalTimeMs   int
	AverageTimeMs int
	WPM           int
}

// ScoreSpeed computes the speed-reading metrics from a closed timing
// ledger. A session finished with zero words scores zero rather than
// dividing by it.
func ScoreSpeed(records []TimingRecord) SpeedScore {
	if len(records) == 0 {
		return SpeedScore{}
	}

	totalMs := 0
	for _, r := range records {
		totalMs += int(r.Elapsed().Milliseconds())
	}

	avg := float64(totalMs) / float64(len(records))
	score := SpeedScore{
		WordCount:     len(records),
		TotalTimeMs:   totalMs,
		AverageTimeMs: roundToInt(avg),
	}
	if avg > 0 {
		score.WPM = roundToInt(60000 / avg)
	}
	return score
}

// ComprehensionScore is the derived result of a finished comprehension
// session.
type ComprehensionScore struct {
	TotalQuestions       int
	CorrectAnswers       int
	Percentage           int
	ReadingTimeMs        int
	AverageReadingTimeMs int
	AnswerTimesMs        []int
	TotalAnswerTimeMs    int
	AverageAnswerTimeMs  int
}

// ScoreComprehension computes the quiz metrics from the reading-phase
// ledger, the per-question ledger and the answer records. answers[i]
// corresponds to questions[i].
func ScoreComprehension(reading, answering []TimingRecord, questions []models.Question, answers []AnswerRecord) ComprehensionScore {
	score := ComprehensionScore{TotalQuestions: len(questions)}

	for _, r := range reading {
		score.ReadingTimeMs += int(r.Elapsed().Milliseconds())
	}
	if len(reading) > 0 {
		score.AverageReadingTimeMs = roundToInt(float64(score.ReadingTimeMs) / float64(len(reading)))
	}

	for _, r := range answering {
		ms := int(r.Elapsed().Milliseconds())
		score.AnswerTimesMs = append(score.AnswerTimesMs, ms)
		score.TotalAnswerTimeMs += ms
	}

	for i, q := range questions {
		if i < len(answers) && answers[i].Selected == q.CorrectOption {
			score.CorrectAnswers++
		}
	}

	if len(questions) > 0 {
		score.Percentage = roundToInt(100 * float64(score.CorrectAnswers) / float64(len(questions)))
		score.AverageAnswerTimeMs = roundToInt(float64(score.TotalAnswerTimeMs) / float64(len(questions)))
	}
	return score
}

// roundToInt rounds half away from zero, which is round-half-up for the
// non-negative figures produced here.
func roundToInt(v float64) int {
	return int(math.Round(v))
}
