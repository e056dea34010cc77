package models

import "time"

// WeatherLog is one weather reading recorded for a user. Timestamps are
// always stored in UTC so rolling-window comparisons are consistent.
// Rows older than the retention window are deleted in the same transaction
// that inserts a new reading, so per-user history never grows past ~24h.
type WeatherLog struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Temperature float64   `gorm:"not null"` // degrees Celsius
	Humidity    float64   `gorm:"not null"` // percent
	Condition   string    `gorm:"size:64"`
	Timestamp   time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
}
