package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database handles database operations
type Database struct {
	db *gorm.DB
}

// NewDatabase creates a new database instance
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	database := &Database{db: db}

	// Auto-migrate the schema
	err = db.AutoMigrate(&UserPreferences{}, &CompressionRecord{})
	if err != nil {
		return nil, err
	}

	return database, nil
}

// GetPreferences gets the current user preferences
func (d *Database) GetPreferences() (*UserPreferencesData, error) {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences updates user preferences
func (d *Database) UpdatePreferences(data UserPreferencesData) error {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return err
	}

	if err := prefs.SetPreferences(data); err != nil {
		return err
	}

	return d.db.Save(prefs).Error
}

// RecordCompression appends one completed run to the history.
func (d *Database) RecordCompression(record *CompressionRecord) error {
	return d.db.Create(record).Error
}

// RecentCompressions returns the most recent history entries, newest
// first.
func (d *Database) RecentCompressions(limit int) ([]CompressionRecord, error) {
	var records []CompressionRecord
	err := d.db.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}

// GetStats aggregates the full compression history.
func (d *Database) GetStats() (*Stats, error) {
	var stats Stats
	if err := d.db.Model(&CompressionRecord{}).Count(&stats.TotalRuns).Error; err != nil {
		return nil, err
	}

	var records []CompressionRecord
	if err := d.db.Find(&records).Error; err != nil {
		return nil, err
	}
	for _, record := range records {
		stats.TotalBytesSaved += record.OriginalSize - record.CompressedSize
	}

	return &stats, nil
}

// getOrCreatePreferences gets existing preferences or creates default ones
func (d *Database) getOrCreatePreferences() (*UserPreferences, error) {
	var prefs UserPreferences

	// Try to get existing preferences with ID = 1
	result := d.db.First(&prefs, 1)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			// Create default preferences
			prefs = UserPreferences{
				ID: 1,
			}

			defaultPrefs := DefaultPreferences()
			if err := prefs.SetPreferences(defaultPrefs); err != nil {
				return nil, err
			}

			if err := d.db.Create(&prefs).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, result.Error
		}
	}

	return &prefs, nil
}
