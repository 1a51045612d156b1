package models

import (
    "time"

    "gorm.io/gorm"
)

// ConsumptionEntry is one logged meal event. Append-only: logging the
// same dish twice is two entries, never a merge.
type ConsumptionEntry struct {
    gorm.Model
    UserID   uint      `gorm:"index;not null"`
    DishID   uint      `gorm:"index;not null"`
    Quantity float64   `gorm:"not null;default:1"` // scales the dish's macros linearly
    LoggedAt time.Time `gorm:"index;not null"`
}
