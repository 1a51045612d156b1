package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// CatalogRepository is the read side of the dish/restaurant/offer
// catalog. Lookups return (nil, nil) when the entity does not exist;
// an error means the store itself failed.
type CatalogRepository interface {
	GetDish(ctx context.Context, id uint) (*models.Dish, error)
	GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error)
	// DishesWithinDistance returns every dish whose restaurant lies
	// within km of the point, with Restaurant populated.
	DishesWithinDistance(ctx context.Context, lat, lng, km float64) ([]models.Dish, error)
	ListOffers(ctx context.Context, dishID uint) ([]models.DeliveryOffer, error)
	// FindDishByName tries an exact name match first, then a substring
	// match (the craving box sends free text).
	FindDishByName(ctx context.Context, name string) (*models.Dish, error)
	// LastModified is the catalog's freshness stamp: the latest
	// updated_at across dishes and restaurants.
	LastModified(ctx context.Context) (time.Time, error)
}

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).Preload("Restaurant").First(&dish, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *GormCatalogRepository) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.db.WithContext(ctx).First(&rest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *GormCatalogRepository) DishesWithinDistance(ctx context.Context, lat, lng, km float64) ([]models.Dish, error) {
	// The catalog is small enough to filter in Go; haversine in SQL
	// would tie us to one database.
	var dishes []models.Dish
	if err := r.db.WithContext(ctx).Preload("Restaurant").Find(&dishes).Error; err != nil {
		return nil, err
	}

	out := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		dist, err := utils.Haversine(lat, lng, d.Restaurant.Latitude, d.Restaurant.Longitude)
		if err != nil {
			return nil, err
		}
		if dist <= km {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *GormCatalogRepository) ListOffers(ctx context.Context, dishID uint) ([]models.DeliveryOffer, error) {
	var offers []models.DeliveryOffer
	err := r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Order("platform ASC").
		Find(&offers).Error
	return offers, err
}

func (r *GormCatalogRepository) FindDishByName(ctx context.Context, name string) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dish).Error
	if err == nil {
		return &dish, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// No exact match, fall back to substring search.
	err = r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("id ASC").
		First(&dish).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *GormCatalogRepository) LastModified(ctx context.Context) (time.Time, error) {
	var latest time.Time
	for _, model := range []interface{}{&models.Dish{}, &models.Restaurant{}} {
		var t sql.NullTime
		if err := r.db.WithContext(ctx).
			Model(model).
			Select("MAX(updated_at)").
			Scan(&t).Error; err != nil {
			return time.Time{}, err
		}
		if t.Valid && t.Time.After(latest) {
			latest = t.Time
		}
	}
	return latest, nil
}
