package services

import (
	"pdfshrink/internal/database"
	domain "pdfshrink/internal/domain/compression"
)

// PreferencesService handles user preferences operations
type PreferencesService struct {
	db *database.Database
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(db *database.Database) *PreferencesService {
	return &PreferencesService{db: db}
}

// GetPreferences returns the current user preferences
func (s *PreferencesService) GetPreferences() (*database.UserPreferencesData, error) {
	if s.db == nil {
		prefs := database.DefaultPreferences()
		return &prefs, nil
	}
	return s.db.GetPreferences()
}

// UpdatePreferences updates user preferences
func (s *PreferencesService) UpdatePreferences(data database.UserPreferencesData) error {
	if s.db == nil {
		return nil
	}
	return s.db.UpdatePreferences(data)
}

// DefaultOptions builds compression options from the stored
// preferences, falling back to built-in defaults when the store is
// unavailable.
func (s *PreferencesService) DefaultOptions() domain.Options {
	prefs, err := s.GetPreferences()
	if err != nil {
		return domain.DefaultOptions()
	}

	level, err := domain.ParseLevel(prefs.DefaultCompressionLevel)
	if err != nil {
		level = domain.LevelMedium
	}

	quality := prefs.DefaultQuality
	if quality < 0 || quality > 100 {
		quality = domain.DefaultOptions().Quality
	}

	return domain.Options{
		Quality:         quality,
		Level:           level,
		PreserveQuality: prefs.PreserveQuality,
	}
}
