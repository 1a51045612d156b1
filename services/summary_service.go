package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"backend/repositories"
)

// LoggedDish is one entry of the daily list: the dish's stored macros
// plus the logged quantity.
type LoggedDish struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type DailySummary struct {
	Date          string       `json:"date"`
	TotalCalories float64      `json:"total_calories"`
	TotalProtein  float64      `json:"total_protein"`
	TotalCarbs    float64      `json:"total_carbs"`
	TotalFats     float64      `json:"total_fats"`
	Dishes        []LoggedDish `json:"dishes"`
}

// SummaryService aggregates the consumption log into per-day macro
// totals.
type SummaryService struct {
	users   repositories.UserRepository
	catalog repositories.CatalogRepository
	log     repositories.LogRepository
}

func NewSummaryService(
	users repositories.UserRepository,
	catalog repositories.CatalogRepository,
	log repositories.LogRepository,
) *SummaryService {
	return &SummaryService{users: users, catalog: catalog, log: log}
}

// DailySummary sums dish macros, scaled by quantity, over the user's
// entries for the given calendar day (zero day means today). A day
// with no entries is a successful all-zero summary. The summary is all
// or nothing: any entry whose dish cannot be resolved aborts the whole
// request.
func (s *SummaryService) DailySummary(ctx context.Context, userID uint, day time.Time) (*DailySummary, error) {
	if day.IsZero() {
		day = time.Now()
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	entries, err := s.log.ListByDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := &DailySummary{
		Date:   day.Format("2006-01-02"),
		Dishes: make([]LoggedDish, 0, len(entries)),
	}
	for _, e := range entries {
		dish, err := s.catalog.GetDish(ctx, e.DishID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if dish == nil {
			return nil, fmt.Errorf("%w: dish %d referenced by log entry %d", ErrNotFound, e.DishID, e.ID)
		}

		out.TotalCalories += dish.Calories * e.Quantity
		out.TotalProtein += dish.ProteinG * e.Quantity
		out.TotalCarbs += dish.CarbsG * e.Quantity
		out.TotalFats += dish.FatsG * e.Quantity

		out.Dishes = append(out.Dishes, LoggedDish{
			Name:     dish.Name,
			Quantity: e.Quantity,
			Calories: dish.Calories,
			Protein:  dish.ProteinG,
			Carbs:    dish.CarbsG,
			Fats:     dish.FatsG,
		})
	}

	// Intermediate sums stay unrounded; only reported totals round to
	// the precision the dish macros are stored at.
	out.TotalCalories = round2(out.TotalCalories)
	out.TotalProtein = round2(out.TotalProtein)
	out.TotalCarbs = round2(out.TotalCarbs)
	out.TotalFats = round2(out.TotalFats)

	return out, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
