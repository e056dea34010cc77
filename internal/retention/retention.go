package retention

import (
	"fmt"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/weather"

	"gorm.io/gorm"
)

// Service owns the rolling-window weather log. It is the only code path
// that inserts WeatherLog rows, which is what keeps the window invariant
// true: every insert prunes in the same transaction.
type Service struct {
	db     *gorm.DB
	window time.Duration
}

func NewService(db *gorm.DB, window time.Duration) *Service {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Service{db: db, window: window}
}

// Record logs a reading for the user stamped with the current UTC time and
// prunes rows that fell out of the window.
func (s *Service) Record(userID uint, r weather.Reading) error {
	return s.RecordAt(userID, r, time.Now().UTC())
}

// RecordAt inserts a reading stamped `now` and deletes the user's rows
// strictly older than now minus the window. Both happen in one transaction:
// a failed commit leaves neither applied.
func (s *Service) RecordAt(userID uint, r weather.Reading, now time.Time) error {
	now = now.UTC()
	cutoff := now.Add(-s.window)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.WeatherLog{
			UserID:      userID,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Condition:   r.Condition,
			Timestamp:   now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("insert weather log: %w", err)
		}
		if err := tx.Where("user_id = ? AND timestamp < ?", userID, cutoff).
			Delete(&models.WeatherLog{}).Error; err != nil {
			return fmt.Errorf("prune weather logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record weather log: %w", err)
	}
	return nil
}

// History returns the user's retained readings ordered by timestamp
// ascending.
func (s *Service) History(userID uint) ([]models.WeatherLog, error) {
	var logs []models.WeatherLog
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load weather logs: %w", err)
	}
	return logs, nil
}
