package services

import (
	"pdfshrink/internal/database"
)

// HistoryService exposes the recorded compression history.
type HistoryService struct {
	db *database.Database
}

// NewHistoryService creates a new history service
func NewHistoryService(db *database.Database) *HistoryService {
	return &HistoryService{db: db}
}

// Recent returns the most recent compression runs, newest first.
func (s *HistoryService) Recent(limit int) ([]database.CompressionRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.db.RecentCompressions(limit)
}

// Stats aggregates the full compression history.
func (s *HistoryService) Stats() (*database.Stats, error) {
	if s.db == nil {
		return &database.Stats{}, nil
	}
	return s.db.GetStats()
}
