package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.sqlite3"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}

func TestGetPreferencesCreatesDefaults(t *testing.T) {
	db := newTestDatabase(t)

	prefs, err := db.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}

	defaults := DefaultPreferences()
	if *prefs != defaults {
		t.Errorf("Expected default preferences %+v, got %+v", defaults, *prefs)
	}
}

func TestUpdatePreferencesRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	want := UserPreferencesData{
		DefaultCompressionLevel: "high",
		DefaultQuality:          40,
		PreserveQuality:         true,
	}
	if err := db.UpdatePreferences(want); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	got, err := db.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if *got != want {
		t.Errorf("Expected preferences %+v, got %+v", want, *got)
	}
}

func TestPreferencesJSONFallback(t *testing.T) {
	prefs := UserPreferences{PreferencesJSON: "{not json"}
	if got := prefs.GetPreferences(); got != DefaultPreferences() {
		t.Errorf("Expected corrupt preferences to fall back to defaults, got %+v", got)
	}
}

func TestRecordAndRecentCompressions(t *testing.T) {
	db := newTestDatabase(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		err := db.RecordCompression(&CompressionRecord{
			Filename:         name,
			OriginalSize:     1000,
			CompressedSize:   400,
			CompressionRatio: 0.6,
			Level:            "medium",
			Quality:          75,
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordCompression failed: %v", err)
		}
	}

	records, err := db.RecentCompressions(2)
	if err != nil {
		t.Fatalf("RecentCompressions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Filename != "c.pdf" || records[1].Filename != "b.pdf" {
		t.Errorf("Expected newest-first ordering, got %s then %s",
			records[0].Filename, records[1].Filename)
	}
}

func TestGetStats(t *testing.T) {
	db := newTestDatabase(t)

	runs := []CompressionRecord{
		{Filename: "a.pdf", OriginalSize: 1000, CompressedSize: 400},
		{Filename: "b.pdf", OriginalSize: 2000, CompressedSize: 1500},
	}
	for i := range runs {
		if err := db.RecordCompression(&runs[i]); err != nil {
			t.Fatalf("RecordCompression failed: %v", err)
		}
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRuns != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.TotalRuns)
	}
	if stats.TotalBytesSaved != 1100 {
		t.Errorf("Expected 1100 bytes saved, got %d", stats.TotalBytesSaved)
	}
}
