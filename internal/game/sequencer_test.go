package game

import (
	"math/rand"
	"testing"

	"github.com/dortega/velocilector/internal/models"
)

func wordPool(texts ...string) []models.Word {
	pool := make([]models.Word, len(texts))
	for i, text := range texts {
		pool[i] = models.Word{ID: int64(i + 1), Text: text, Level: 1}
	}
	return pool
}

func TestSpeedSequencerNoRepeatsWithinPool(t *testing.T) {
	pool := wordPool("casa", "perro", "gato", "sol", "luna", "agua", "pan", "flor")

	// Target fits inside the pool, so no word may appear twice.
	for seed := int64(0); seed < 20; seed++ {
		seq := NewSpeedSequencer(pool, 6, rand.New(rand.NewSource(seed)))
		seen := make(map[string]bool)
		for {
			word, _, ok := seq.Next()
			if !ok {
				break
			}
			if seen[word.Text] {
				t.Fatalf("seed %d: word %q repeated with pool %d > target %d", seed, word.Text, len(pool), 6)
			}
			seen[word.Text] = true
		}
		if len(seen) != 6 {
			t.Fatalf("seed %d: presented %d words, want 6", seed, len(seen))
		}
	}
}

func TestSpeedSequencerRepeatsAllowedOnSmallPool(t *testing.T) {
	pool := wordPool("casa", "perro")
	seq := NewSpeedSequencer(pool, 5, rand.New(rand.NewSource(1)))

	count := 0
	for {
		_, _, ok := seq.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 5 {
		t.Errorf("presented %d words, want 5 despite pool of 2", count)
	}
}

func TestSpeedSequencerCompletionExactness(t *testing.T) {
	pool := wordPool("casa", "perro", "gato")
	seq := NewSpeedSequencer(pool, 3, rand.New(rand.NewSource(7)))

	for i := 1; i <= 3; i++ {
		word, isLast, ok := seq.Next()
		if !ok {
			t.Fatalf("completion signalled early, at unit %d of 3", i)
		}
		if word.Text == "" {
			t.Fatalf("unit %d: empty word", i)
		}
		if isLast != (i == 3) {
			t.Errorf("unit %d: isLast = %v, want %v", i, isLast, i == 3)
		}
	}

	// Completion is signalled exactly once and sticks.
	for i := 0; i < 2; i++ {
		if _, _, ok := seq.Next(); ok {
			t.Fatal("sequencer returned a word after completion")
		}
	}
	if seq.Count() != 3 {
		t.Errorf("Count() = %d, want 3", seq.Count())
	}
}

func TestComprehensionSequencerFixedOrder(t *testing.T) {
	questions := []models.Question{
		{ID: 10, Prompt: "first"},
		{ID: 20, Prompt: "second"},
		{ID: 30, Prompt: "third"},
	}
	seq := NewComprehensionSequencer(questions)

	for i, want := range questions {
		q, isLast, ok := seq.Next()
		if !ok {
			t.Fatalf("completion signalled early, at question %d", i+1)
		}
		if q.ID != want.ID {
			t.Errorf("question %d: ID = %d, want %d (order must be fixed)", i+1, q.ID, want.ID)
		}
		if isLast != (i == len(questions)-1) {
			t.Errorf("question %d: isLast = %v", i+1, isLast)
		}
	}

	if _, _, ok := seq.Next(); ok {
		t.Error("sequencer returned a question after the last one")
	}
}
