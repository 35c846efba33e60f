package engine

import (
	"crimestats/internal/models"
	"fmt"
)

// MaxBy returns the record with the highest rate for c.
// Ties keep the earliest record.
func (s *Store) MaxBy(c models.Category) (*models.CrimeRecord, error) {
	if err := s.checkQuery(c); err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < len(s.records); i++ {
		if s.records[i].Rate(c) > s.records[best].Rate(c) {
			best = i
		}
	}
	return &s.records[best], nil
}

// MinBy returns the record with the lowest rate for c.
// The first record always seeds the running minimum, later records replace
// it only when strictly lower, so ties keep the earliest record.
func (s *Store) MinBy(c models.Category) (*models.CrimeRecord, error) {
	if err := s.checkQuery(c); err != nil {
		return nil, err
	}

	best := -1
	var minRate float64
	for i := range s.records {
		rate := s.records[i].Rate(c)
		if best < 0 || rate < minRate {
			best, minRate = i, rate
		}
	}
	return &s.records[best], nil
}

func (s *Store) MaxByName(name string) (*models.CrimeRecord, error) {
	c, err := models.ParseCategory(name)
	if err != nil {
		return nil, err
	}
	return s.MaxBy(c)
}

func (s *Store) MinByName(name string) (*models.CrimeRecord, error) {
	c, err := models.ParseCategory(name)
	if err != nil {
		return nil, err
	}
	return s.MinBy(c)
}

func (s *Store) checkQuery(c models.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	if len(s.records) == 0 {
		return ErrNoData
	}
	return nil
}

// PopulationChanges reports the population delta for each adjacent pair of
// records. A single record yields an empty result; an empty store is ErrNoData.
// A zero previous population reports a percent change of 0.
func (s *Store) PopulationChanges() ([]models.PopulationChange, error) {
	if len(s.records) == 0 {
		return nil, ErrNoData
	}

	out := make([]models.PopulationChange, 0, len(s.records)-1)
	for i := 1; i < len(s.records); i++ {
		prev, cur := &s.records[i-1], &s.records[i]
		diff := cur.Population - prev.Population

		var pct float64
		if prev.Population != 0 {
			pct = float64(diff) / float64(prev.Population) * 100
		}

		out = append(out, models.PopulationChange{
			FromYear: prev.Year,
			ToYear:   cur.Year,
			Percent:  pct,
			Absolute: diff,
		})
	}
	return out, nil
}

// Aggregate builds the full report: highest and lowest year for every
// category plus the consecutive-year population changes.
func (s *Store) Aggregate() (*models.DashboardData, error) {
	changes, err := s.PopulationChanges()
	if err != nil {
		return nil, err
	}

	data := &models.DashboardData{
		Years:             len(s.records),
		FirstYear:         s.records[0].Year,
		LastYear:          s.records[len(s.records)-1].Year,
		Extremes:          make([]models.CategoryExtreme, 0, models.NumCategories),
		PopulationChanges: changes,
	}

	for _, c := range models.Categories() {
		hi, err := s.MaxBy(c)
		if err != nil {
			return nil, err
		}
		lo, err := s.MinBy(c)
		if err != nil {
			return nil, err
		}
		data.Extremes = append(data.Extremes, models.CategoryExtreme{Category: c, Highest: hi, Lowest: lo})
	}

	return data, nil
}
