package services

import (
	"context"
	"sync/atomic"
	"time"

	"backend/models"
	"backend/repositories"
)

// Colombo city centre; restaurants in the tests sit at small offsets
// from here (0.01 deg of latitude is roughly 1.1 km).
const (
	homeLat = 6.9271
	homeLng = 79.8612
)

type fixture struct {
	catalog *repositories.MemoryCatalogRepository
	users   *repositories.MemoryUserRepository
	log     *repositories.MemoryLogRepository
	recs    *repositories.MemoryRecommendationRepository
}

func newFixture() *fixture {
	return &fixture{
		catalog: repositories.NewMemoryCatalogRepository(),
		users:   repositories.NewMemoryUserRepository(),
		log:     repositories.NewMemoryLogRepository(),
		recs:    repositories.NewMemoryRecommendationRepository(),
	}
}

func (f *fixture) addUserAt(name string, lat, lng float64) uint {
	user := &models.User{
		Name:          name,
		Email:         name + "@example.com",
		CalorieTarget: 2000,
		Latitude:      &lat,
		Longitude:     &lng,
	}
	_ = f.users.Create(context.Background(), user)
	return user.ID
}

func (f *fixture) addUserWithoutLocation(name string) uint {
	user := &models.User{
		Name:          name,
		Email:         name + "@example.com",
		CalorieTarget: 2000,
	}
	_ = f.users.Create(context.Background(), user)
	return user.ID
}

// countingCatalog counts underlying search executions so tests can
// assert the compute-once guarantee.
type countingCatalog struct {
	repositories.CatalogRepository
	searches atomic.Int32
}

func (c *countingCatalog) DishesWithinDistance(ctx context.Context, lat, lng, km float64) ([]models.Dish, error) {
	c.searches.Add(1)
	return c.CatalogRepository.DishesWithinDistance(ctx, lat, lng, km)
}

// slowCatalog delays every search, either to widen the window in which
// concurrent callers coalesce or to trip the search timeout.
type slowCatalog struct {
	repositories.CatalogRepository
	delay time.Duration
}

func (c *slowCatalog) DishesWithinDistance(ctx context.Context, lat, lng, km float64) ([]models.Dish, error) {
	time.Sleep(c.delay)
	return c.CatalogRepository.DishesWithinDistance(ctx, lat, lng, km)
}
