package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/domain/shift"
	"gorm.io/gorm"
)

// GormShiftCloseRepository implements shift.CloseRepository using GORM
type GormShiftCloseRepository struct {
	db *gorm.DB
}

// NewGormShiftCloseRepository creates a new GormShiftCloseRepository
func NewGormShiftCloseRepository(db *gorm.DB) *GormShiftCloseRepository {
	return &GormShiftCloseRepository{db: db}
}

// FindByPair returns the lock for a (shift, date) pair, or nil when the
// shift is still open
func (r *GormShiftCloseRepository) FindByPair(ctx context.Context, shiftID int, closeDate time.Time) (*shift.Close, error) {
	var lock shift.Close
	if err := r.db.WithContext(ctx).
		First(&lock, "shift_id = ? AND close_date = ?", shiftID, closeDate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lock, nil
}

// Save inserts the lock row. The unique index on (shift_id, close_date)
// rejects a second close; the violation is translated into ErrAlreadyExists
// so callers can map it to a conflict.
func (r *GormShiftCloseRepository) Save(ctx context.Context, lock *shift.Close) error {
	if err := r.db.WithContext(ctx).Create(lock).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || shared.IsUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ shift.CloseRepository = (*GormShiftCloseRepository)(nil)

// GormReadingRepository implements shift.ReadingRepository using GORM
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GormReadingRepository
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// SaveDispenserReading inserts a dispenser reading row
func (r *GormReadingRepository) SaveDispenserReading(ctx context.Context, reading *shift.DispenserReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

// SaveDailyReading inserts the daily summary row
func (r *GormReadingRepository) SaveDailyReading(ctx context.Context, daily *shift.DailyReading) error {
	return r.db.WithContext(ctx).Create(daily).Error
}

// FindDispenserReadings returns a closed shift's dispenser rows
func (r *GormReadingRepository) FindDispenserReadings(ctx context.Context, shiftID int, readingDate time.Time) ([]shift.DispenserReading, error) {
	var readings []shift.DispenserReading
	if err := r.db.WithContext(ctx).
		Where("shift_id = ? AND reading_date = ?", shiftID, readingDate).
		Order("dispenser_name ASC").
		Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

// FindDailyReading returns a closed shift's summary row, or nil when absent
func (r *GormReadingRepository) FindDailyReading(ctx context.Context, shiftID int, readingDate time.Time) (*shift.DailyReading, error) {
	var daily shift.DailyReading
	if err := r.db.WithContext(ctx).
		First(&daily, "shift_id = ? AND reading_date = ?", shiftID, readingDate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &daily, nil
}

var _ shift.ReadingRepository = (*GormReadingRepository)(nil)
