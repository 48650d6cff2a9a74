package ledger

import (
	"errors"
	"fmt"
)

// ErrNegativeXP rejects a negative XP delta or override value before any
// state is touched.
var ErrNegativeXP = errors.New("xp must not be negative")

// DailyCapError is the user-facing block returned when a free account has
// used up today's missions. It is produced by the pre-check, never by the
// completion path itself.
type DailyCapError struct {
	Cap int
}

func (e *DailyCapError) Error() string {
	return fmt.Sprintf("daily mission limit reached (%d per day on the free plan)", e.Cap)
}
