package models

import (
    "gorm.io/gorm"
)

// A place that owns dishes. Coordinates are required — distance
// filtering is the whole point of the catalog.
type Restaurant struct {
    gorm.Model
    Name      string  `gorm:"not null"`
    Latitude  float64 `gorm:"not null"`
    Longitude float64 `gorm:"not null"`
    Dishes    []Dish
}

// One catalog dish with its nutrition snapshot per serving.
type Dish struct {
    gorm.Model
    Name         string `gorm:"index;not null"`
    RestaurantID uint   `gorm:"index;not null"`
    Restaurant   Restaurant

    Calories float64
    ProteinG float64
    CarbsG   float64
    FatsG    float64
}

// DeliveryOffer is one platform's price for a dish. At most one offer
// per (dish, platform) pair.
type DeliveryOffer struct {
    gorm.Model
    DishID   uint    `gorm:"uniqueIndex:idx_offer_dish_platform;not null"`
    Platform string  `gorm:"uniqueIndex:idx_offer_dish_platform;size:64;not null"`
    Price    float64 `gorm:"not null"`
}
