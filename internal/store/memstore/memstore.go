// Package memstore holds the labeled record set for the running
// process. Ingestion and CSV upload replace the whole set; readers get
// copies. There is no other persistence besides flat-file export.
package memstore

import (
	"sync"

	"github.com/policypulse/backend/internal/models"
)

type Store struct {
	mu      sync.RWMutex
	records []models.LabeledRecord
}

func New() *Store {
	return &Store{}
}

// Replace swaps the record set for a new one.
func (s *Store) Replace(records []models.LabeledRecord) {
	copied := make([]models.LabeledRecord, len(records))
	copy(copied, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = copied
}

// All returns a copy of the current record set.
func (s *Store) All() []models.LabeledRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]models.LabeledRecord, len(s.records))
	copy(copied, s.records)
	return copied
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
