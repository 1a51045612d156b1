package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"backend/models"
	"backend/repositories"
	"backend/utils"

	"golang.org/x/sync/singleflight"
)

const defaultSearchTimeout = 5 * time.Second

// Recommendation is the matcher's answer for one craved dish.
// Found=false is a successful "no suitable alternative" outcome.
type Recommendation struct {
	Found         bool    `json:"found"`
	AltDishID     uint    `json:"alt_dish_id,omitempty"`
	AltDishName   string  `json:"alternative_dish,omitempty"`
	AltRestaurant string  `json:"alt_restaurant,omitempty"`
	AltCalories   float64 `json:"alt_calories,omitempty"`
	CalorieDiff   float64 `json:"calorie_diff,omitempty"`
}

// RecommendationService finds the nutritionally closest lighter dish
// within reach of the user, remembering results per
// (dish, user, max distance) key. Concurrent callers for the same key
// share exactly one underlying search.
type RecommendationService struct {
	catalog repositories.CatalogRepository
	users   repositories.UserRepository
	recs    repositories.RecommendationRepository

	group         singleflight.Group
	searchTimeout time.Duration
}

func NewRecommendationService(
	catalog repositories.CatalogRepository,
	users repositories.UserRepository,
	recs repositories.RecommendationRepository,
) *RecommendationService {
	return &RecommendationService{
		catalog:       catalog,
		users:         users,
		recs:          recs,
		searchTimeout: defaultSearchTimeout,
	}
}

// SetSearchTimeout overrides the bound on one underlying search.
func (s *RecommendationService) SetSearchTimeout(d time.Duration) {
	s.searchTimeout = d
}

func (s *RecommendationService) FindAlternative(ctx context.Context, dishID, userID uint, maxKm float64) (*Recommendation, error) {
	// Zero is a legal radius: it admits only a restaurant at exactly
	// the user's coordinates.
	if maxKm < 0 {
		return nil, fmt.Errorf("%w: max distance must not be negative", ErrInvalidInput)
	}

	// Reuse a cached record only while the catalog is unchanged since
	// it was computed.
	cached, err := s.recs.Get(ctx, dishID, userID, maxKm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if cached != nil {
		stamp, err := s.catalog.LastModified(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if !cached.ComputedAt.Before(stamp) {
			return toRecommendation(cached), nil
		}
	}

	// Cache miss or stale record: one search per key, shared by every
	// concurrent caller.
	key := fmt.Sprintf("%d:%d:%g", dishID, userID, maxKm)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.searchWithTimeout(dishID, userID, maxKm)
	})
	if err != nil {
		return nil, err
	}
	return toRecommendation(v.(*models.RecommendationRecord)), nil
}

// searchWithTimeout runs one search under the configured bound. The
// search is detached from any single caller's context so a canceled
// leader request cannot fail the waiters sharing its flight.
func (s *RecommendationService) searchWithTimeout(dishID, userID uint, maxKm float64) (*models.RecommendationRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.searchTimeout)
	defer cancel()

	type outcome struct {
		rec *models.RecommendationRecord
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		rec, err := s.search(ctx, dishID, userID, maxKm)
		done <- outcome{rec, err}
	}()

	select {
	case out := <-done:
		return out.rec, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: after %s", ErrTimeout, s.searchTimeout)
	}
}

func (s *RecommendationService) search(ctx context.Context, dishID, userID uint, maxKm float64) (*models.RecommendationRecord, error) {
	source, err := s.catalog.GetDish(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: dish %d", ErrNotFound, dishID)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if !user.HasLocation() {
		return nil, ErrNoLocation
	}

	candidates, err := s.catalog.DishesWithinDistance(ctx, *user.Latitude, *user.Longitude, maxKm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	best := pickAlternative(source, candidates, *user.Latitude, *user.Longitude)

	record := &models.RecommendationRecord{
		DishID:        dishID,
		UserID:        userID,
		MaxDistanceKm: maxKm,
		ComputedAt:    time.Now(),
	}
	if best != nil {
		record.Found = true
		record.AltDishID = &best.ID
		record.AltDishName = best.Name
		record.AltRestaurant = best.Restaurant.Name
		record.AltCalories = best.Calories
		record.CalorieDiff = source.Calories - best.Calories
	}

	if err := s.recs.Put(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return record, nil
}

// pickAlternative selects the candidate with calories at or below the
// source's, minimizing the calorie gap. Ties fall to the dish closer
// to the user, then to the lower dish ID, so the result is
// deterministic.
func pickAlternative(source *models.Dish, candidates []models.Dish, userLat, userLng float64) *models.Dish {
	var best *models.Dish
	bestDiff := math.MaxFloat64
	bestDist := math.MaxFloat64

	for i := range candidates {
		c := &candidates[i]
		if c.ID == source.ID || c.Calories > source.Calories {
			continue
		}

		diff := source.Calories - c.Calories
		dist, err := utils.Haversine(userLat, userLng, c.Restaurant.Latitude, c.Restaurant.Longitude)
		if err != nil {
			continue
		}

		switch {
		case diff < bestDiff:
		case diff == bestDiff && dist < bestDist:
		case diff == bestDiff && dist == bestDist && c.ID < best.ID:
		default:
			continue
		}
		best, bestDiff, bestDist = c, diff, dist
	}
	return best
}

func toRecommendation(rec *models.RecommendationRecord) *Recommendation {
	out := &Recommendation{Found: rec.Found}
	if rec.Found {
		if rec.AltDishID != nil {
			out.AltDishID = *rec.AltDishID
		}
		out.AltDishName = rec.AltDishName
		out.AltRestaurant = rec.AltRestaurant
		out.AltCalories = rec.AltCalories
		out.CalorieDiff = rec.CalorieDiff
	}
	return out
}
