package engine

import (
	"crimestats/internal/models"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumFields is the fixed column count of a data row:
// year, population, then a (count, rate) pair per category.
const NumFields = 2 + 2*models.NumCategories

var (
	errNegative  = errors.New("negative value")
	errNonFinite = errors.New("non-finite value")
)

// ParseRecord converts one comma-separated row into a CrimeRecord.
// Fields are not trimmed.
func ParseRecord(line string) (models.CrimeRecord, error) {
	var rec models.CrimeRecord

	cols := strings.Split(line, ",")
	if len(cols) != NumFields {
		return rec, &MalformedRecordError{
			Field:   -1,
			Content: line,
			Err:     fmt.Errorf("expected %d fields, got %d", NumFields, len(cols)),
		}
	}

	fail := func(field int, err error) (models.CrimeRecord, error) {
		return models.CrimeRecord{}, &MalformedRecordError{Field: field, Content: cols[field], Err: err}
	}

	// 0: Year
	year, err := parseCount(cols[0])
	if err != nil {
		return fail(0, err)
	}
	rec.Year = int(year)

	// 1: Population
	if rec.Population, err = parseCount(cols[1]); err != nil {
		return fail(1, err)
	}

	// 2..19: (count, rate) per category
	for _, c := range models.Categories() {
		pos := 2 + 2*int(c)
		count, rate := rec.Fields(c)
		if *count, err = parseCount(cols[pos]); err != nil {
			return fail(pos, err)
		}
		if *rate, err = parseRate(cols[pos+1]); err != nil {
			return fail(pos+1, err)
		}
	}

	return rec, nil
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

func parseRate(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errNonFinite
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}
