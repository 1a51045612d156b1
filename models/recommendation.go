package models

import (
    "time"

    "gorm.io/gorm"
)

// RecommendationRecord caches one alternative-dish search result, keyed
// by (dish, user, max distance). A record with Found=false is a valid
// cached outcome ("no suitable alternative"), not an error.
//
// ComputedAt doubles as the freshness stamp: the record may be reused
// only while it is at-or-after the catalog's last modification.
type RecommendationRecord struct {
    gorm.Model
    DishID        uint    `gorm:"uniqueIndex:idx_rec_key;not null"`
    UserID        uint    `gorm:"uniqueIndex:idx_rec_key;not null"`
    MaxDistanceKm float64 `gorm:"uniqueIndex:idx_rec_key;not null"`

    Found         bool
    AltDishID     *uint
    AltDishName   string
    AltRestaurant string
    AltCalories   float64
    CalorieDiff   float64

    ComputedAt time.Time `gorm:"index;not null"`
}
