package repositories

import (
	"context"
	"errors"

	"backend/models"

	"gorm.io/gorm"
)

// RecommendationRepository stores computed alternative-dish results,
// one per (dish, user, max distance) key.
type RecommendationRepository interface {
	Get(ctx context.Context, dishID, userID uint, maxKm float64) (*models.RecommendationRecord, error)
	Put(ctx context.Context, record *models.RecommendationRecord) error
}

type GormRecommendationRepository struct {
	db *gorm.DB
}

func NewGormRecommendationRepository(db *gorm.DB) *GormRecommendationRepository {
	return &GormRecommendationRepository{db: db}
}

func (r *GormRecommendationRepository) Get(ctx context.Context, dishID, userID uint, maxKm float64) (*models.RecommendationRecord, error) {
	var rec models.RecommendationRecord
	err := r.db.WithContext(ctx).
		Where("dish_id = ? AND user_id = ? AND max_distance_km = ?", dishID, userID, maxKm).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRecommendationRepository) Put(ctx context.Context, record *models.RecommendationRecord) error {
	var existing models.RecommendationRecord
	// Assign by map so a result flipping back to "none found" clears
	// the alternative fields (struct assigns skip zero values).
	return r.db.WithContext(ctx).
		Where("dish_id = ? AND user_id = ? AND max_distance_km = ?",
			record.DishID, record.UserID, record.MaxDistanceKm).
		Assign(map[string]interface{}{
			"found":          record.Found,
			"alt_dish_id":    record.AltDishID,
			"alt_dish_name":  record.AltDishName,
			"alt_restaurant": record.AltRestaurant,
			"alt_calories":   record.AltCalories,
			"calorie_diff":   record.CalorieDiff,
			"computed_at":    record.ComputedAt,
		}).
		FirstOrCreate(&existing).Error
}
