package services

import (
	"path/filepath"
	"testing"

	"pdfshrink/internal/database"
	domain "pdfshrink/internal/domain/compression"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}

func TestPreferencesWithoutDatabase(t *testing.T) {
	service := NewPreferencesService(nil)

	prefs, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if *prefs != database.DefaultPreferences() {
		t.Errorf("Expected built-in defaults, got %+v", *prefs)
	}

	if err := service.UpdatePreferences(database.DefaultPreferences()); err != nil {
		t.Errorf("Expected update without database to be a no-op, got %v", err)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	service := NewPreferencesService(newTestDatabase(t))

	want := database.UserPreferencesData{
		DefaultCompressionLevel: "high",
		DefaultQuality:          30,
		PreserveQuality:         true,
	}
	if err := service.UpdatePreferences(want); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	got, err := service.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if *got != want {
		t.Errorf("Expected preferences %+v, got %+v", want, *got)
	}
}

func TestDefaultOptions(t *testing.T) {
	service := NewPreferencesService(newTestDatabase(t))

	err := service.UpdatePreferences(database.UserPreferencesData{
		DefaultCompressionLevel: "high",
		DefaultQuality:          35,
		PreserveQuality:         true,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	opts := service.DefaultOptions()
	if opts.Level != domain.LevelHigh {
		t.Errorf("Expected level high, got %s", opts.Level)
	}
	if opts.Quality != 35 {
		t.Errorf("Expected quality 35, got %d", opts.Quality)
	}
	if !opts.PreserveQuality {
		t.Error("Expected preserve quality to be set")
	}
}

func TestDefaultOptionsSanitizesStoredValues(t *testing.T) {
	service := NewPreferencesService(newTestDatabase(t))

	err := service.UpdatePreferences(database.UserPreferencesData{
		DefaultCompressionLevel: "extreme",
		DefaultQuality:          400,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	opts := service.DefaultOptions()
	if opts.Level != domain.LevelMedium {
		t.Errorf("Expected unknown level to fall back to medium, got %s", opts.Level)
	}
	if opts.Quality != domain.DefaultOptions().Quality {
		t.Errorf("Expected out-of-range quality to fall back to %d, got %d",
			domain.DefaultOptions().Quality, opts.Quality)
	}
}
