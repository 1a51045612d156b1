package repositories

import (
	"context"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// LogRepository is the append-only consumption log. Entries from
// different callers may interleave freely; only the (user, date)
// grouping matters.
type LogRepository interface {
	Append(ctx context.Context, entry *models.ConsumptionEntry) error
	// ListByDate returns the user's entries for the calendar day of
	// `day`, ordered by LoggedAt.
	ListByDate(ctx context.Context, userID uint, day time.Time) ([]models.ConsumptionEntry, error)
}

type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

func (r *GormLogRepository) Append(ctx context.Context, entry *models.ConsumptionEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormLogRepository) ListByDate(ctx context.Context, userID uint, day time.Time) ([]models.ConsumptionEntry, error) {
	start := dayStart(day)
	end := start.Add(24 * time.Hour)

	var entries []models.ConsumptionEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, start, end).
		Order("logged_at ASC").
		Find(&entries).Error
	return entries, err
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
