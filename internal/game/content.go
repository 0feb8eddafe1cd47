package game

import (
	"context"
	"errors"

	"github.com/dortega/velocilector/internal/models"
)

// ErrContentUnavailable is returned by a ContentProvider when no words or
// texts exist for the requested language and level. It terminates the
// session in the error phase; there is no automatic retry.
var ErrContentUnavailable = errors.New("game: no content available for language and level")

// ContentProvider supplies the unit material a session presents.
type ContentProvider interface {
	// WordPool returns up to count words for the speed game.
	WordPool(ctx context.Context, language string, level, count int) ([]models.Word, error)

	// RandomTextWithQuestions returns one randomly chosen passage at the
	// session's level together with its ordered questions.
	RandomTextWithQuestions(ctx context.Context, language string, level int) (*models.TextWithQuestions, error)
}

// Result is the finished-session record handed to the PersistenceGateway.
type Result struct {
	Mode     Mode
	UserID   int64
	PlayerID int64
	Level    int
	Language string

	// Speed mode
	Words []string
	Speed SpeedScore

	// Comprehension mode
	TextID        int64
	TextContent   string
	TextWordCount int
	Comprehension ComprehensionScore
}

// PersistenceGateway stores a finished session record. Saving is
// fire-and-forget from the session's perspective: the gateway logs its own
// failures and they never surface to the player.
type PersistenceGateway interface {
	SaveSessionResult(ctx context.Context, result *Result) error
}

// Listener receives presentation notifications from a session. All
// callbacks run with the session lock held; implementations must not call
// back into the session.
type Listener interface {
	PhaseChanged(from, to Phase)
	UnitPresented(unitRef string, index, total int)
}

type nopListener struct{}

func (nopListener) PhaseChanged(from, to Phase)                    {}
func (nopListener) UnitPresented(unitRef string, index, total int) {}
