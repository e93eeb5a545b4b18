package shift

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
)

// State is the lifecycle state of a (shift, date) pair. Open is the state
// when no lock row exists; Closed is terminal and irreversible through this
// engine - no unlock operation exists.
type State string

const (
	StateOpen   State = "OPEN"
	StateClosed State = "CLOSED"
)

// IsTerminal reports whether the state admits no further transitions
func (s State) IsTerminal() bool {
	return s == StateClosed
}

// Close is the lock record keyed by the unique (shift id, calendar date)
// pair. Its presence blocks any further mutation of that shift's readings for
// that date; uniqueness must be enforced at the storage layer, not only here.
type Close struct {
	shared.BaseEntity
	ShiftID   int       `gorm:"not null;uniqueIndex:idx_shift_close_pair"`
	CloseDate time.Time `gorm:"not null;uniqueIndex:idx_shift_close_pair"`
}

// TableName returns the table name for GORM
func (Close) TableName() string {
	return "shift_closes"
}

// NewClose creates a lock record for a (shift, date) pair
func NewClose(shiftID int, closeDate time.Time) (*Close, error) {
	if shiftID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Shift ID must be positive")
	}
	if closeDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Close date is required")
	}
	return &Close{
		BaseEntity: shared.NewBaseEntity(),
		ShiftID:    shiftID,
		CloseDate:  closeDate.Truncate(24 * time.Hour),
	}, nil
}
