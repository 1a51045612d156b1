package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheapestPicksLowestPrice(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	dish := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddOffer(dish, "platformA", 12.50)
	f.catalog.AddOffer(dish, "platformB", 9.99)

	svc := NewDeliveryService(f.catalog)
	offer, err := svc.Cheapest(context.Background(), dish)
	require.NoError(t, err)
	require.Equal(t, "platformB", offer.Platform)
	require.Equal(t, 9.99, offer.Price)
}

func TestCheapestTieBreaksByPlatformName(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	dish := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)
	f.catalog.AddOffer(dish, "zesty", 9.99)
	f.catalog.AddOffer(dish, "arrow", 9.99)

	svc := NewDeliveryService(f.catalog)
	offer, err := svc.Cheapest(context.Background(), dish)
	require.NoError(t, err)
	require.Equal(t, "arrow", offer.Platform)
}

func TestCheapestNoOffersIsNotAvailable(t *testing.T) {
	f := newFixture()
	rest := f.catalog.AddRestaurant("Corner Kitchen", homeLat, homeLng)
	dish := f.catalog.AddDish("Cheese Kottu", rest, 850, 30, 90, 40)

	svc := NewDeliveryService(f.catalog)
	_, err := svc.Cheapest(context.Background(), dish)
	require.ErrorIs(t, err, ErrNotAvailable)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestCheapestUnknownDish(t *testing.T) {
	f := newFixture()
	svc := NewDeliveryService(f.catalog)
	_, err := svc.Cheapest(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}
