package models

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is returned for a category name outside the fixed set.
var ErrInvalidCategory = errors.New("invalid crime category")

// Category identifies one of the nine tracked crime types.
// Values follow the column order of the source file.
type Category int

const (
	ViolentCrime Category = iota
	Murder
	Rape
	Robbery
	Assault
	PropertyCrime
	Burglary
	Theft
	VehicleTheft

	NumCategories = 9
)

// CrimeRecord holds one calendar year of statistics.
type CrimeRecord struct {
	Year       int   `json:"year"`
	Population int64 `json:"population"`

	ViolentCrime      int64   `json:"violent_crime"`
	ViolentCrimeRate  float64 `json:"violent_crime_rate"`
	Murder            int64   `json:"murder"`
	MurderRate        float64 `json:"murder_rate"`
	Rape              int64   `json:"rape"`
	RapeRate          float64 `json:"rape_rate"`
	Robbery           int64   `json:"robbery"`
	RobberyRate       float64 `json:"robbery_rate"`
	Assault           int64   `json:"assault"`
	AssaultRate       float64 `json:"assault_rate"`
	PropertyCrime     int64   `json:"property_crime"`
	PropertyCrimeRate float64 `json:"property_crime_rate"`
	Burglary          int64   `json:"burglary"`
	BurglaryRate      float64 `json:"burglary_rate"`
	Theft             int64   `json:"theft"`
	TheftRate         float64 `json:"theft_rate"`
	VehicleTheft      int64   `json:"vehicle_theft"`
	VehicleTheftRate  float64 `json:"vehicle_theft_rate"`
}

// categoryField is the accessor table entry for one category.
// Parsing and querying both go through it.
type categoryField struct {
	name   string
	plural string
	fields func(r *CrimeRecord) (*int64, *float64)
}

var categoryTable = [NumCategories]categoryField{
	ViolentCrime:  {"Violent Crime", "violent crimes", func(r *CrimeRecord) (*int64, *float64) { return &r.ViolentCrime, &r.ViolentCrimeRate }},
	Murder:        {"Murder", "murders", func(r *CrimeRecord) (*int64, *float64) { return &r.Murder, &r.MurderRate }},
	Rape:          {"Rape", "rapes", func(r *CrimeRecord) (*int64, *float64) { return &r.Rape, &r.RapeRate }},
	Robbery:       {"Robbery", "robberies", func(r *CrimeRecord) (*int64, *float64) { return &r.Robbery, &r.RobberyRate }},
	Assault:       {"Assault", "assaults", func(r *CrimeRecord) (*int64, *float64) { return &r.Assault, &r.AssaultRate }},
	PropertyCrime: {"Property Crime", "property crimes", func(r *CrimeRecord) (*int64, *float64) { return &r.PropertyCrime, &r.PropertyCrimeRate }},
	Burglary:      {"Burglary", "burglaries", func(r *CrimeRecord) (*int64, *float64) { return &r.Burglary, &r.BurglaryRate }},
	Theft:         {"Theft", "thefts", func(r *CrimeRecord) (*int64, *float64) { return &r.Theft, &r.TheftRate }},
	VehicleTheft:  {"Vehicle Theft", "vehicle thefts", func(r *CrimeRecord) (*int64, *float64) { return &r.VehicleTheft, &r.VehicleTheftRate }},
}

// Categories lists every category in column order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory matches name exactly (case-sensitive) against the nine display names.
func ParseCategory(name string) (Category, error) {
	for i, f := range categoryTable {
		if f.name == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

func (c Category) Valid() bool { return c >= 0 && c < NumCategories }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryTable[c].name
}

// Plural is the lower-case noun used when reporting totals, e.g. "robberies".
func (c Category) Plural() string {
	if !c.Valid() {
		return ""
	}
	return categoryTable[c].plural
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.String()), nil
}

// Fields returns pointers to the count and rate of category c within r.
// The caller must pass a valid category.
func (r *CrimeRecord) Fields(c Category) (*int64, *float64) {
	return categoryTable[c].fields(r)
}

func (r *CrimeRecord) Count(c Category) int64 {
	n, _ := r.Fields(c)
	return *n
}

func (r *CrimeRecord) Rate(c Category) float64 {
	_, rate := r.Fields(c)
	return *rate
}

// PopulationChange is the population delta between two adjacent records.
type PopulationChange struct {
	FromYear int     `json:"from_year"`
	ToYear   int     `json:"to_year"`
	Percent  float64 `json:"percent"`
	Absolute int64   `json:"absolute"`
}

// PercentString renders Percent with four decimals.
func (p PopulationChange) PercentString() string {
	return fmt.Sprintf("%.4f", p.Percent)
}

// CategoryExtreme pairs a category with its highest and lowest rate years.
type CategoryExtreme struct {
	Category Category     `json:"category"`
	Highest  *CrimeRecord `json:"highest"`
	Lowest   *CrimeRecord `json:"lowest"`
}

// DashboardData is the full report served by the API summary endpoint.
type DashboardData struct {
	Years             int                `json:"years"`
	FirstYear         int                `json:"first_year"`
	LastYear          int                `json:"last_year"`
	Extremes          []CategoryExtreme  `json:"extremes"`
	PopulationChanges []PopulationChange `json:"population_changes"`
}
