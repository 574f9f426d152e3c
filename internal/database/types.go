package database

import (
	"encoding/json"
	"time"

	"pdfshrink/internal/common"
)

// UserPreferences database model
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents user preferences data
type UserPreferencesData struct {
	DefaultCompressionLevel string `json:"default_compression_level"`
	DefaultQuality          int    `json:"default_quality"`
	PreserveQuality         bool   `json:"preserve_quality"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		DefaultCompressionLevel: common.DefaultCompressionLevel,
		DefaultQuality:          common.DefaultQuality,
		PreserveQuality:         false,
	}
}

// GetPreferences returns the user preferences data
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	if up.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	var prefs UserPreferencesData
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the user preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}

// CompressionRecord is one completed compression run.
type CompressionRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Filename         string    `json:"filename"`
	OriginalSize     int64     `json:"original_size"`
	CompressedSize   int64     `json:"compressed_size"`
	CompressionRatio float64   `json:"compression_ratio"`
	Level            string    `json:"level"`
	Quality          int       `json:"quality"`
	CreatedAt        time.Time `json:"created_at"`
}

// Stats aggregates the recorded compression history.
type Stats struct {
	TotalRuns       int64 `json:"total_runs"`
	TotalBytesSaved int64 `json:"total_bytes_saved"`
}
