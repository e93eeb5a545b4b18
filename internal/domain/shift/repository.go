package shift

import (
	"context"
	"time"
)

// CloseRepository persists shift-close locks
type CloseRepository interface {
	// FindByPair returns the lock for a (shift, date) pair, or nil when the
	// shift is still open.
	FindByPair(ctx context.Context, shiftID int, closeDate time.Time) (*Close, error)
	Save(ctx context.Context, lock *Close) error
}

// ReadingRepository persists dispenser and daily reading rows
type ReadingRepository interface {
	SaveDispenserReading(ctx context.Context, reading *DispenserReading) error
	SaveDailyReading(ctx context.Context, daily *DailyReading) error
	FindDispenserReadings(ctx context.Context, shiftID int, readingDate time.Time) ([]DispenserReading, error)
	FindDailyReading(ctx context.Context, shiftID int, readingDate time.Time) (*DailyReading, error)
}
