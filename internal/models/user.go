package models

import "time"

// User represents application user. Email is the login identity and is
// matched case-insensitively.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	City         string `gorm:"size:64"` // empty = location not set
	Country      string `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Logs []WeatherLog `gorm:"constraint:OnDelete:CASCADE"`
}

// HasLocation reports whether both city and country are set. The dashboard
// only fetches weather when this is true.
func (u *User) HasLocation() bool {
	return u.City != "" && u.Country != ""
}
