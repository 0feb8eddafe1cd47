package game

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/dortega/velocilector/internal/models"
)

type fakeContent struct {
	pool []models.Word
	twq  *models.TextWithQuestions
	err  error
}

func (f *fakeContent) WordPool(ctx context.Context, language string, level, count int) ([]models.Word, error) {
	return f.pool, f.err
}

func (f *fakeContent) RandomTextWithQuestions(ctx context.Context, language string, level int) (*models.TextWithQuestions, error) {
	return f.twq, f.err
}

type fakeGateway struct {
	saved chan *Result
	err   error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{saved: make(chan *Result, 4)}
}

func (f *fakeGateway) SaveSessionResult(ctx context.Context, result *Result) error {
	f.saved <- result
	return f.err
}

func speedSession(t *testing.T, level, target int, content ContentProvider, gateway PersistenceGateway) *Session {
	t.Helper()
	cfg := NewConfig(ModeSpeed, level, "es", 1, 7)
	cfg.TotalWordTarget = target
	s := NewSession(cfg, content, gateway, nil)
	s.rng = rand.New(rand.NewSource(42))
	return s
}

// Scenario: beginner manual session over a three-word pool, one second per
// word, expecting WPM 60 and a fully closed ledger.
func TestSpeedSessionManualFlow(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro", "gato")}
	gateway := newFakeGateway()

	s := speedSession(t, 1, 3, content, gateway)
	s.now = stepClock(time.Unix(0, 0), time.Second)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Phase() != PhaseIntro {
		t.Fatalf("phase after load = %v, want intro", s.Phase())
	}
	if s.Config().AutoAdvance {
		t.Fatal("beginner tier must be manual")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Phase() != PhasePresenting {
		t.Fatalf("phase after start = %v, want presenting", s.Phase())
	}

	seen := []string{s.Snapshot().UnitRef}
	for i := 0; i < 2; i++ {
		if err := s.Tap(); err != nil {
			t.Fatalf("Tap %d: %v", i+1, err)
		}
		seen = append(seen, s.Snapshot().UnitRef)
	}

	// Third tap closes the last word and finishes the run.
	if err := s.Tap(); err != nil {
		t.Fatalf("final Tap: %v", err)
	}
	if s.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase())
	}

	// No word may repeat when the target fits the pool.
	unique := make(map[string]bool)
	for _, w := range seen {
		if unique[w] {
			t.Errorf("word %q presented twice", w)
		}
		unique[w] = true
	}

	// Every timing record is closed at finish.
	for i, r := range s.clock.Records() {
		if r.IsOpen() {
			t.Errorf("record %d still open at finish", i)
		}
	}
	if n := s.clock.Count(); n != 3 {
		t.Errorf("timing records = %d, want 3", n)
	}

	result := s.Result()
	if result == nil {
		t.Fatal("Result() = nil after finish")
	}
	if result.Speed.AverageTimeMs != 1000 {
		t.Errorf("AverageTimeMs = %d, want 1000", result.Speed.AverageTimeMs)
	}
	if result.Speed.WPM != 60 {
		t.Errorf("WPM = %d, want 60", result.Speed.WPM)
	}

	select {
	case saved := <-gateway.saved:
		if saved.PlayerID != 7 {
			t.Errorf("saved PlayerID = %d, want 7", saved.PlayerID)
		}
	case <-time.After(time.Second):
		t.Fatal("result never handed to the persistence gateway")
	}
}

func TestSpeedSessionAutoAdvance(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro", "gato", "sol", "luna")}
	gateway := newFakeGateway()

	s := speedSession(t, 5, 3, content, gateway) // intermediate: auto
	s.cfg.Delay = 10 * time.Millisecond

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Config().AutoAdvance {
		t.Fatal("intermediate tier must auto-advance")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for s.Phase() != PhaseFinished {
		select {
		case <-deadline:
			t.Fatalf("session never finished, phase %v", s.Phase())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if n := s.clock.Count(); n != 3 {
		t.Errorf("timing records = %d, want 3", n)
	}
	if s.Result().Speed.WPM <= 0 {
		t.Errorf("WPM = %d, want > 0", s.Result().Speed.WPM)
	}
}

func TestSpeedSessionPauseResume(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro", "gato", "sol")}

	s := speedSession(t, 5, 4, content, newFakeGateway())
	s.cfg.Delay = 50 * time.Millisecond

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := s.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if !s.Snapshot().Paused {
		t.Fatal("snapshot should report paused")
	}

	// No advance happens while paused.
	before := s.Snapshot().UnitRef
	time.Sleep(150 * time.Millisecond)
	if got := s.Snapshot().UnitRef; got != before {
		t.Fatalf("word advanced while paused: %q -> %q", before, got)
	}

	// A tap while paused resumes rather than skipping ahead.
	if err := s.Tap(); err != nil {
		t.Fatalf("Tap to resume: %v", err)
	}
	time.Sleep(120 * time.Millisecond)
	if got := s.Snapshot().UnitRef; got == before && s.Phase() == PhasePresenting {
		t.Error("word did not advance after resume")
	}
}

func TestComprehensionSessionFlow(t *testing.T) {
	twq := &models.TextWithQuestions{
		Text: models.Text{ID: 3, Content: "Mi perro se llama Max", Language: "es", Level: 2},
		Questions: []models.Question{
			{ID: 1, Prompt: "nombre?", Options: []string{"Rex", "Max", "Toby"}, CorrectOption: 1},
			{ID: 2, Prompt: "animal?", Options: []string{"gato", "ave", "perro"}, CorrectOption: 2},
		},
	}
	content := &fakeContent{twq: twq}
	gateway := newFakeGateway()

	cfg := NewConfig(ModeComprehension, 2, "es", 1, 9)
	s := NewSession(cfg, content, gateway, nil)
	s.now = stepClock(time.Unix(0, 0), 200*time.Millisecond)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Read through all five words of the text.
	words := strings.Fields(twq.Text.Content)
	for i := 1; i < len(words); i++ {
		if got := s.Snapshot().UnitRef; got != words[i-1] {
			t.Fatalf("reading word %d = %q, want %q", i, got, words[i-1])
		}
		if err := s.Tap(); err != nil {
			t.Fatalf("Tap during reading: %v", err)
		}
	}
	if err := s.Tap(); err != nil {
		t.Fatalf("final reading Tap: %v", err)
	}

	if s.Phase() != PhaseAnswering {
		t.Fatalf("phase after reading = %v, want answering", s.Phase())
	}

	// Advancing without a selection is rejected.
	if err := s.NextQuestion(); err != ErrNoSelection {
		t.Fatalf("NextQuestion without selection = %v, want ErrNoSelection", err)
	}

	// Answers [1, 0] against correct indices [1, 2]: one correct.
	if err := s.SelectAnswer(1); err != nil {
		t.Fatalf("SelectAnswer q1: %v", err)
	}
	if err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion 1: %v", err)
	}
	if err := s.SelectAnswer(0); err != nil {
		t.Fatalf("SelectAnswer q2: %v", err)
	}
	if err := s.NextQuestion(); err != nil {
		t.Fatalf("NextQuestion 2: %v", err)
	}

	if s.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase())
	}

	result := s.Result()
	if result.Comprehension.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", result.Comprehension.CorrectAnswers)
	}
	if result.Comprehension.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", result.Comprehension.Percentage)
	}
	if result.TextWordCount != len(words) {
		t.Errorf("TextWordCount = %d, want %d", result.TextWordCount, len(words))
	}

	// Reading and answering ledgers are fully closed.
	for i, r := range s.clock.Records() {
		if r.IsOpen() {
			t.Errorf("reading record %d open at finish", i)
		}
	}
	for i, r := range s.answerClock.Records() {
		if r.IsOpen() {
			t.Errorf("answer record %d open at finish", i)
		}
	}
	if n := s.answerClock.Count(); n != 2 {
		t.Errorf("answer records = %d, want 2", n)
	}

	select {
	case <-gateway.saved:
	case <-time.After(time.Second):
		t.Fatal("result never handed to the persistence gateway")
	}
}

func TestSessionSelectionInvalidOption(t *testing.T) {
	twq := &models.TextWithQuestions{
		Text: models.Text{ID: 1, Content: "hola"},
		Questions: []models.Question{
			{ID: 1, Prompt: "?", Options: []string{"a", "b"}, CorrectOption: 0},
		},
	}
	cfg := NewConfig(ModeComprehension, 1, "es", 1, 0)
	s := NewSession(cfg, &fakeContent{twq: twq}, nil, nil)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Tap(); err != nil { // single reading word -> answering
		t.Fatalf("Tap: %v", err)
	}

	if err := s.SelectAnswer(5); err != ErrInvalidOption {
		t.Errorf("SelectAnswer(5) = %v, want ErrInvalidOption", err)
	}
	if err := s.SelectAnswer(-1); err != ErrInvalidOption {
		t.Errorf("SelectAnswer(-1) = %v, want ErrInvalidOption", err)
	}
}

// Scenario: a restart signal mid-presenting cancels the pending timer and
// returns to intro with an empty ledger.
func TestSessionRestartMidPresenting(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro", "gato", "sol", "luna")}

	s := speedSession(t, 5, 5, content, newFakeGateway())
	s.cfg.Delay = 20 * time.Millisecond

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Phase() != PhaseIntro {
		t.Fatalf("phase after restart = %v, want intro", s.Phase())
	}

	// A stale timer firing after teardown must not touch the new state.
	time.Sleep(100 * time.Millisecond)
	if n := s.clock.Count(); n != 0 {
		t.Errorf("timing records after restart = %d, want 0", n)
	}
	if s.Phase() != PhaseIntro {
		t.Errorf("phase drifted to %v after restart", s.Phase())
	}

	// The session is fully playable again.
	if err := s.Start(); err != nil {
		t.Fatalf("Start after restart: %v", err)
	}
	if s.Snapshot().UnitRef == "" {
		t.Error("no word presented after restart")
	}
}

func TestSessionTeardownStopsEverything(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro", "gato")}

	s := speedSession(t, 5, 3, content, newFakeGateway())
	s.cfg.Delay = 10 * time.Millisecond

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s.Teardown()
	records := s.clock.Count()

	time.Sleep(80 * time.Millisecond)
	if n := s.clock.Count(); n != records {
		t.Errorf("records mutated after teardown: %d -> %d", records, n)
	}

	if err := s.Tap(); err != ErrSessionDone {
		t.Errorf("Tap after teardown = %v, want ErrSessionDone", err)
	}
	if err := s.Restart(); err != ErrSessionDone {
		t.Errorf("Restart after teardown = %v, want ErrSessionDone", err)
	}
}

// Scenario: content fetch failure terminates the session before any unit
// is presented and nothing is ever persisted.
func TestSessionContentUnavailable(t *testing.T) {
	gateway := newFakeGateway()
	cfg := NewConfig(ModeSpeed, 3, "es", 1, 7)
	s := NewSession(cfg, &fakeContent{err: ErrContentUnavailable}, gateway, nil)

	err := s.Load(context.Background())
	if !errors.Is(err, ErrContentUnavailable) {
		t.Fatalf("Load error = %v, want ErrContentUnavailable", err)
	}
	if s.Phase() != PhaseError {
		t.Fatalf("phase = %v, want error", s.Phase())
	}

	// Terminal: no start, no records, no persistence.
	if err := s.Start(); err != ErrWrongPhase {
		t.Errorf("Start in error phase = %v, want ErrWrongPhase", err)
	}
	select {
	case <-gateway.saved:
		t.Fatal("persistence attempted after content failure")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionAnonymousPlayDoesNotPersist(t *testing.T) {
	content := &fakeContent{pool: wordPool("casa", "perro")}
	gateway := newFakeGateway()

	cfg := NewConfig(ModeSpeed, 1, "es", 0, 0) // no player selected
	cfg.TotalWordTarget = 2
	if cfg.PersistOnFinish {
		t.Fatal("anonymous config must not persist")
	}

	s := NewSession(cfg, content, gateway, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Tap(); err != nil {
		t.Fatalf("Tap: %v", err)
	}
	if err := s.Tap(); err != nil {
		t.Fatalf("Tap: %v", err)
	}

	if s.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase())
	}
	select {
	case <-gateway.saved:
		t.Fatal("anonymous session was persisted")
	case <-time.After(50 * time.Millisecond):
	}
}
