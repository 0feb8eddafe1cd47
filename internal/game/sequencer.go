package game

import (
	"math/rand"

	"github.com/dortega/velocilector/internal/models"
)

// maxDrawAttempts bounds the anti-repeat rejection loop so small pools
// cannot spin forever.
const maxDrawAttempts = 20

// SpeedSequencer draws words pseudo-randomly from the level's pool until
// the session's word target is reached. A word already presented is
// rejected and redrawn unless the whole pool has been seen or the attempt
// budget runs out, in which case the repeat is accepted.
type SpeedSequencer struct {
	pool      []models.Word
	target    int
	rng       *rand.Rand
	presented map[string]struct{}
	count     int
}

// NewSpeedSequencer creates a sequencer over the given pool. target is the
// total number of words to present.
func NewSpeedSequencer(pool []models.Word, target int, rng *rand.Rand) *SpeedSequencer {
	return &SpeedSequencer{
		pool:      pool,
		target:    target,
		rng:       rng,
		presented: make(map[string]struct{}),
	}
}

// Next returns the next word to present and whether it is the last one.
// ok is false exactly when the target has been reached and the session is
// complete; no further words are returned after that.
func (s *SpeedSequencer) Next() (word models.Word, isLast bool, ok bool) {
	if s.count >= s.target || len(s.pool) == 0 {
		return models.Word{}, false, false
	}

	word = s.draw()
	s.presented[word.Text] = struct{}{}
	s.count++
	return word, s.count == s.target, true
}

// Count returns how many words have been handed out so far.
func (s *SpeedSequencer) Count() int {
	return s.count
}

func (s *SpeedSequencer) draw() models.Word {
	// Once every pool word has been shown, repeats are fair game.
	if len(s.presented) >= len(s.pool) {
		return s.pool[s.rng.Intn(len(s.pool))]
	}

	var candidate models.Word
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		candidate = s.pool[s.rng.Intn(len(s.pool))]
		if _, seen := s.presented[candidate.Text]; !seen {
			return candidate
		}
	}
	// Attempt budget exhausted: accept the repeat.
	return candidate
}

// ComprehensionSequencer walks a fixed, pre-fetched question list in order.
type ComprehensionSequencer struct {
	questions []models.Question
	cursor    int
}

// NewComprehensionSequencer creates a sequencer over the text's questions.
func NewComprehensionSequencer(questions []models.Question) *ComprehensionSequencer {
	return &ComprehensionSequencer{questions: questions}
}

// Next returns the next question in order. ok is false once the cursor has
// passed the last question.
func (s *ComprehensionSequencer) Next() (q models.Question, isLast bool, ok bool) {
	if s.cursor >= len(s.questions) {
		return models.Question{}, false, false
	}
	q = s.questions[s.cursor]
	s.cursor++
	return q, s.cursor == len(s.questions), true
}

// Count returns how many questions have been handed out so far.
func (s *ComprehensionSequencer) Count() int {
	return s.cursor
}
