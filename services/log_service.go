package services

import (
	"context"
	"fmt"
	"time"

	"backend/models"
	"backend/repositories"
)

// LogService appends consumption entries. Deliberately not idempotent:
// logging the same meal twice is two entries.
type LogService struct {
	users   repositories.UserRepository
	catalog repositories.CatalogRepository
	log     repositories.LogRepository
}

func NewLogService(
	users repositories.UserRepository,
	catalog repositories.CatalogRepository,
	log repositories.LogRepository,
) *LogService {
	return &LogService{users: users, catalog: catalog, log: log}
}

// LogDish records one meal event. Quantity defaults to 1 and the
// timestamp to now when omitted.
func (s *LogService) LogDish(ctx context.Context, userID, dishID uint, quantity *float64, at *time.Time) (*models.ConsumptionEntry, error) {
	qty := 1.0
	if quantity != nil {
		qty = *quantity
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}

	loggedAt := time.Now()
	if at != nil {
		loggedAt = *at
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	dish, err := s.catalog.GetDish(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if dish == nil {
		return nil, fmt.Errorf("%w: dish %d", ErrNotFound, dishID)
	}

	entry := &models.ConsumptionEntry{
		UserID:   userID,
		DishID:   dishID,
		Quantity: qty,
		LoggedAt: loggedAt,
	}
	if err := s.log.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return entry, nil
}
