package engine

import "crimestats/internal/models"

// Store holds one record per ingested data row, in file order.
// It is never mutated after Load returns, so it can be shared freely.
type Store struct {
	records []models.CrimeRecord
}

// NewStore builds a store over recs. The store takes ownership of the slice.
func NewStore(recs []models.CrimeRecord) *Store {
	return &Store{records: recs}
}

func (s *Store) Len() int { return len(s.records) }

// Records calls fn for each record in order until fn returns false.
// The pointers refer to the store's own records and must not be modified.
func (s *Store) Records(fn func(i int, r *models.CrimeRecord) bool) {
	for i := range s.records {
		if !fn(i, &s.records[i]) {
			return
		}
	}
}

// At returns the i-th record, or nil when i is out of range.
func (s *Store) At(i int) *models.CrimeRecord {
	if i < 0 || i >= len(s.records) {
		return nil
	}
	return &s.records[i]
}

// Year returns the first record for year y.
func (s *Store) Year(y int) (*models.CrimeRecord, bool) {
	for i := range s.records {
		if s.records[i].Year == y {
			return &s.records[i], true
		}
	}
	return nil, false
}
