package services

import (
	"context"
	"fmt"
	"strings"

	"backend/models"
	"backend/repositories"
)

// DishService resolves free-text dish names from the craving box to
// catalog IDs.
type DishService struct {
	catalog repositories.CatalogRepository
}

func NewDishService(catalog repositories.CatalogRepository) *DishService {
	return &DishService{catalog: catalog}
}

// ResolveDish matches the name exactly first, then by substring.
func (s *DishService) ResolveDish(ctx context.Context, name string) (*models.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: dish name is required", ErrInvalidInput)
	}

	dish, err := s.catalog.FindDishByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if dish == nil {
		return nil, fmt.Errorf("%w: no dish matching %q", ErrNotFound, name)
	}
	return dish, nil
}
