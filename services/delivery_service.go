package services

import (
	"context"
	"fmt"

	"backend/models"
	"backend/repositories"
)

// DeliveryService answers "which platform delivers this dish
// cheapest". A pure catalog lookup, cheap enough to skip caching.
type DeliveryService struct {
	catalog repositories.CatalogRepository
}

func NewDeliveryService(catalog repositories.CatalogRepository) *DeliveryService {
	return &DeliveryService{catalog: catalog}
}

// Cheapest returns the lowest-priced offer for the dish. Ties fall to
// the lexically smaller platform name. A dish with no offers yields
// ErrNotAvailable — a valid "no delivery" outcome, not a failure.
func (s *DeliveryService) Cheapest(ctx context.Context, dishID uint) (*models.DeliveryOffer, error) {
	dish, err := s.catalog.GetDish(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if dish == nil {
		return nil, fmt.Errorf("%w: dish %d", ErrNotFound, dishID)
	}

	offers, err := s.catalog.ListOffers(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(offers) == 0 {
		return nil, ErrNotAvailable
	}

	best := offers[0]
	for _, o := range offers[1:] {
		if o.Price < best.Price || (o.Price == best.Price && o.Platform < best.Platform) {
			best = o
		}
	}
	return &best, nil
}
