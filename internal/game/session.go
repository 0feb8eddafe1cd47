package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dortega/velocilector/internal/models"
)

// Mode selects which mini-game a session runs.
type Mode string

const (
	ModeSpeed         Mode = "speed"
	ModeComprehension Mode = "comprehension"
)

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseIntro      Phase = "intro"
	PhasePresenting Phase = "presenting"
	PhaseAnswering  Phase = "answering"
	PhaseFinished   Phase = "finished"
	PhaseError      Phase = "error"
)

// DefaultWordTarget is the number of words a speed session presents when
// the caller does not override it.
const DefaultWordTarget = 50

var (
	ErrWrongPhase    = errors.New("game: operation not valid in current phase")
	ErrNoSelection   = errors.New("game: question has no answer selected")
	ErrInvalidOption = errors.New("game: selected option out of range")
	ErrSessionDone   = errors.New("game: session already torn down")
)

// Config is immutable for the session's lifetime.
type Config struct {
	Mode            Mode
	Level           int
	Language        string
	TotalWordTarget int
	UserID          int64
	PlayerID        int64 // 0 when playing without a profile
	PersistOnFinish bool
	AutoAdvance     bool
	Delay           time.Duration
}

// NewConfig derives a full session config from the chosen mode, level and
// player. Playing without a profile is valid and simply disables
// persistence.
func NewConfig(mode Mode, level int, language string, userID, playerID int64) Config {
	return Config{
		Mode:            mode,
		Level:           level,
		Language:        language,
		TotalWordTarget: DefaultWordTarget,
		UserID:          userID,
		PlayerID:        playerID,
		PersistOnFinish: playerID != 0,
		AutoAdvance:     mode == ModeSpeed && AutoAdvance(level),
		Delay:           AdvanceDelay(level),
	}
}

// Session is the finite-state controller that drives unit presentation,
// timing capture and score computation for one game run. It owns its state
// exclusively; handlers and the pacer's timer interact with it only
// through its methods.
type Session struct {
	mu sync.Mutex

	cfg      Config
	content  ContentProvider
	gateway  PersistenceGateway
	listener Listener

	// injectable for tests; default wall clock and seeded rng
	now func() time.Time
	rng *rand.Rand

	phase Phase
	done  bool // torn down on a new-configuration signal
	pacer *Pacer

	// speed mode state
	pool     []models.Word
	speed    *SpeedSequencer
	current  models.Word
	lastWord bool

	// comprehension mode state
	textRef      *models.TextWithQuestions
	readingWords []string
	readingIdx   int
	questions    *ComprehensionSequencer
	question     models.Question
	lastQuestion bool
	answers      []AnswerRecord

	clock       *Clock // word-level ledger (speed, or the reading phase)
	answerClock *Clock // question-level ledger (comprehension)

	result *Result
}

// NewSession creates a session in the loading phase. listener may be nil.
func NewSession(cfg Config, content ContentProvider, gateway PersistenceGateway, listener Listener) *Session {
	if listener == nil {
		listener = nopListener{}
	}
	return &Session{
		cfg:      cfg,
		content:  content,
		gateway:  gateway,
		listener: listener,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:    PhaseLoading,
		pacer:    NewPacer(),
	}
}

// Config returns the immutable session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Load fetches the session's content. On success the session moves to the
// intro phase; on failure it enters the terminal error phase and the user
// must start over.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhaseLoading {
		return ErrWrongPhase
	}

	switch s.cfg.Mode {
	case ModeSpeed:
		pool, err := s.content.WordPool(ctx, s.cfg.Language, s.cfg.Level, s.cfg.TotalWordTarget*2)
		if err != nil {
			s.setPhase(PhaseError)
			return fmt.Errorf("loading word pool: %w", err)
		}
		if len(pool) == 0 {
			s.setPhase(PhaseError)
			return ErrContentUnavailable
		}
		s.pool = pool

	case ModeComprehension:
		twq, err := s.content.RandomTextWithQuestions(ctx, s.cfg.Language, s.cfg.Level)
		if err != nil {
			s.setPhase(PhaseError)
			return fmt.Errorf("loading text: %w", err)
		}
		if twq == nil || len(twq.Questions) == 0 {
			s.setPhase(PhaseError)
			return ErrContentUnavailable
		}
		s.textRef = twq
		s.readingWords = strings.Fields(twq.Text.Content)

	default:
		s.setPhase(PhaseError)
		return fmt.Errorf("unknown game mode %q", s.cfg.Mode)
	}

	s.resetRunState()
	s.setPhase(PhaseIntro)
	return nil
}

// Start begins presenting units. Valid only from the intro phase.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhaseIntro {
		return ErrWrongPhase
	}

	s.setPhase(PhasePresenting)

	switch s.cfg.Mode {
	case ModeSpeed:
		word, isLast, ok := s.speed.Next()
		if !ok {
			// Zero-target session: nothing to show.
			s.finishLocked()
			return nil
		}
		s.current = word
		s.lastWord = isLast
		s.clock.OpenUnit(word.Text)
		s.listener.UnitPresented(word.Text, s.speed.Count(), s.cfg.TotalWordTarget)
		s.armPacerLocked()

	case ModeComprehension:
		if len(s.readingWords) == 0 {
			s.beginAnsweringLocked()
			return nil
		}
		s.readingIdx = 0
		s.clock.OpenUnit(s.readingWords[0])
		s.listener.UnitPresented(s.readingWords[0], 1, len(s.readingWords))
	}
	return nil
}

// Tap is the explicit advance signal from the player. In manual modes it
// moves to the next unit; while auto-advance is paused it resumes instead.
func (s *Session) Tap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhasePresenting {
		return ErrWrongPhase
	}

	if s.cfg.AutoAdvance {
		if s.pacer.State() == PacerPaused {
			return s.pacer.Resume()
		}
		// Taps do not skip ahead in auto-advance mode.
		return nil
	}

	s.advanceLocked()
	return nil
}

// Pause suspends auto-advance. Valid only while a timer is pending.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhasePresenting || !s.cfg.AutoAdvance {
		return ErrWrongPhase
	}
	return s.pacer.Pause()
}

// Resume re-arms auto-advance with the full configured delay.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhasePresenting || !s.cfg.AutoAdvance {
		return ErrWrongPhase
	}
	return s.pacer.Resume()
}

// SelectAnswer records the player's choice for the current question. The
// selection stays mutable until the question is advanced past.
func (s *Session) SelectAnswer(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhaseAnswering {
		return ErrWrongPhase
	}
	if option < 0 || option >= len(s.question.Options) {
		return ErrInvalidOption
	}

	s.answers[s.questions.Count()-1].Selected = option
	return nil
}

// NextQuestion closes the current question and presents the next one, or
// finishes the session after the last. Advancing without a selection is
// rejected.
func (s *Session) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase != PhaseAnswering {
		return ErrWrongPhase
	}
	if s.answers[s.questions.Count()-1].Selected == NoSelection {
		return ErrNoSelection
	}

	s.answerClock.CloseCurrent()

	if s.lastQuestion {
		s.finishLocked()
		return nil
	}

	q, isLast, ok := s.questions.Next()
	if !ok {
		s.finishLocked()
		return nil
	}
	s.question = q
	s.lastQuestion = isLast
	s.answerClock.OpenUnit(questionRef(q))
	s.listener.UnitPresented(questionRef(q), s.questions.Count(), len(s.answers))
	return nil
}

// Restart is the out-of-band "play again" signal: it cancels any pending
// timer, discards the run state and returns to the intro phase with the
// same configuration and content. Valid from any phase after loading.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ErrSessionDone
	}
	if s.phase == PhaseLoading || s.phase == PhaseError {
		return ErrWrongPhase
	}

	s.pacer.Cancel()
	s.pacer = NewPacer()
	s.resetRunState()
	s.setPhase(PhaseIntro)
	return nil
}

// Teardown is the new-configuration signal: it synchronously cancels any
// pending timer and marks the session unusable so a stale fire can never
// mutate replaced state. The surrounding shell discards the instance.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pacer.Cancel()
	s.done = true
}

// Result returns the finished record, or nil before the finished phase.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// View is a read-only snapshot for the presentation layer.
type View struct {
	Phase     Phase
	Mode      Mode
	Paused    bool
	UnitRef   string   // current word or question prompt
	Options   []string // answering phase only
	Selected  int
	Index     int // 1-based position of the current unit
	Total     int
	Progress  float64 // 0..1
	Result    *Result
}

// Snapshot returns the current presentation state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Phase:    s.phase,
		Mode:     s.cfg.Mode,
		Paused:   s.pacer.State() == PacerPaused,
		Selected: NoSelection,
		Result:   s.result,
	}

	switch {
	case s.phase == PhasePresenting && s.cfg.Mode == ModeSpeed:
		v.UnitRef = s.current.Text
		v.Index = s.speed.Count()
		v.Total = s.cfg.TotalWordTarget
	case s.phase == PhasePresenting && s.cfg.Mode == ModeComprehension:
		if s.readingIdx < len(s.readingWords) {
			v.UnitRef = s.readingWords[s.readingIdx]
		}
		v.Index = s.readingIdx + 1
		v.Total = len(s.readingWords)
	case s.phase == PhaseAnswering:
		v.UnitRef = s.question.Prompt
		v.Options = s.question.Options
		v.Index = s.questions.Count()
		v.Total = len(s.answers)
		v.Selected = s.answers[s.questions.Count()-1].Selected
	}

	if v.Total > 0 {
		v.Progress = float64(v.Index) / float64(v.Total)
	}
	return v
}

// resetRunState builds fresh per-run state from the loaded content; caller
// holds the lock.
func (s *Session) resetRunState() {
	s.clock = NewClockAt(s.now)
	s.answerClock = NewClockAt(s.now)
	s.result = nil
	s.lastWord = false
	s.lastQuestion = false
	s.readingIdx = 0

	switch s.cfg.Mode {
	case ModeSpeed:
		s.speed = NewSpeedSequencer(s.pool, s.cfg.TotalWordTarget, s.rng)
		s.current = models.Word{}
	case ModeComprehension:
		s.questions = NewComprehensionSequencer(s.textRef.Questions)
		s.question = models.Question{}
		s.answers = make([]AnswerRecord, len(s.textRef.Questions))
		for i := range s.answers {
			s.answers[i] = AnswerRecord{
				QuestionID: s.textRef.Questions[i].ID,
				Selected:   NoSelection,
			}
		}
	}
}

// advanceLocked closes the current unit and presents the next, finishing
// the run when the sequencer is exhausted; caller holds the lock.
func (s *Session) advanceLocked() {
	s.clock.CloseCurrent()

	switch s.cfg.Mode {
	case ModeSpeed:
		if s.lastWord {
			s.finishLocked()
			return
		}
		word, isLast, ok := s.speed.Next()
		if !ok {
			s.finishLocked()
			return
		}
		s.current = word
		s.lastWord = isLast
		s.clock.OpenUnit(word.Text)
		s.listener.UnitPresented(word.Text, s.speed.Count(), s.cfg.TotalWordTarget)
		s.armPacerLocked()

	case ModeComprehension:
		s.readingIdx++
		if s.readingIdx >= len(s.readingWords) {
			s.beginAnsweringLocked()
			return
		}
		s.clock.OpenUnit(s.readingWords[s.readingIdx])
		s.listener.UnitPresented(s.readingWords[s.readingIdx], s.readingIdx+1, len(s.readingWords))
	}
}

// beginAnsweringLocked transitions from the reading sub-phase to the
// question loop; caller holds the lock.
func (s *Session) beginAnsweringLocked() {
	s.setPhase(PhaseAnswering)

	q, isLast, ok := s.questions.Next()
	if !ok {
		s.finishLocked()
		return
	}
	s.question = q
	s.lastQuestion = isLast
	s.answerClock.OpenUnit(questionRef(q))
	s.listener.UnitPresented(questionRef(q), s.questions.Count(), len(s.answers))
}

// armPacerLocked schedules the next auto-advance if the config calls for
// it; caller holds the lock.
func (s *Session) armPacerLocked() {
	if !s.cfg.AutoAdvance {
		return
	}
	if err := s.pacer.Schedule(s.autoAdvance, s.cfg.Delay); err != nil {
		log.Printf("game: pacer schedule failed: %v", err)
	}
}

// autoAdvance is the pacer's timer callback.
func (s *Session) autoAdvance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done || s.phase != PhasePresenting {
		return
	}
	s.advanceLocked()
}

// finishLocked closes the ledger, computes the score and hands the record
// to the gateway; caller holds the lock.
func (s *Session) finishLocked() {
	s.clock.CloseCurrent()
	s.answerClock.CloseCurrent()
	s.pacer.Cancel()

	result := &Result{
		Mode:     s.cfg.Mode,
		UserID:   s.cfg.UserID,
		PlayerID: s.cfg.PlayerID,
		Level:    s.cfg.Level,
		Language: s.cfg.Language,
	}

	switch s.cfg.Mode {
	case ModeSpeed:
		records := s.clock.Records()
		for _, r := range records {
			result.Words = append(result.Words, r.UnitRef)
		}
		result.Speed = ScoreSpeed(records)
	case ModeComprehension:
		result.TextID = s.textRef.Text.ID
		result.TextContent = s.textRef.Text.Content
		result.TextWordCount = len(s.readingWords)
		result.Comprehension = ScoreComprehension(
			s.clock.Records(), s.answerClock.Records(),
			s.textRef.Questions, s.answers)
	}

	s.result = result
	s.setPhase(PhaseFinished)

	// Fire-and-forget: a failed save is logged and never blocks the
	// finished-phase experience.
	if s.cfg.PersistOnFinish && s.gateway != nil {
		go func(r *Result) {
			if err := s.gateway.SaveSessionResult(context.Background(), r); err != nil {
				log.Printf("game: failed to save session result for player %d: %v", r.PlayerID, err)
			}
		}(result)
	}
}

// setPhase transitions phases and notifies the listener; caller holds the
// lock.
func (s *Session) setPhase(to Phase) {
	from := s.phase
	s.phase = to
	if from != to {
		s.listener.PhaseChanged(from, to)
	}
}

func questionRef(q models.Question) string {
	return "q" + strconv.FormatInt(q.ID, 10)
}
