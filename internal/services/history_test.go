package services

import (
	"testing"

	"pdfshrink/internal/database"
)

func TestHistoryWithoutDatabase(t *testing.T) {
	service := NewHistoryService(nil)

	records, err := service.Recent(5)
	if err != nil || records != nil {
		t.Errorf("Expected empty history without database, got %v, %v", records, err)
	}

	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRuns != 0 || stats.TotalBytesSaved != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestHistoryRecentAndStats(t *testing.T) {
	db := newTestDatabase(t)
	service := NewHistoryService(db)

	err := db.RecordCompression(&database.CompressionRecord{
		Filename:       "a.pdf",
		OriginalSize:   1000,
		CompressedSize: 250,
	})
	if err != nil {
		t.Fatalf("RecordCompression failed: %v", err)
	}

	records, err := service.Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	stats, err := service.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalRuns != 1 || stats.TotalBytesSaved != 750 {
		t.Errorf("Expected 1 run saving 750 bytes, got %+v", stats)
	}
}
