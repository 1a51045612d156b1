package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Name          string `gorm:"not null"`
    Email         string `gorm:"uniqueIndex;not null"`
    CalorieTarget int    // kcal/day, set at registration

    // Home location, needed for distance-filtered matching.
    // Nil when the user skipped the location step.
    Latitude  *float64
    Longitude *float64
}

// HasLocation reports whether the user registered home coordinates.
func (u *User) HasLocation() bool {
    return u.Latitude != nil && u.Longitude != nil
}
