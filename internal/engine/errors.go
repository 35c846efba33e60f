package engine

import (
	"crimestats/internal/models"
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means the input could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRecord means a data row has the wrong arity or a non-numeric field.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNoData means a query ran against an empty store.
	ErrNoData = errors.New("no data")

	// ErrInvalidCategory means a query named a category outside the fixed set.
	ErrInvalidCategory = models.ErrInvalidCategory
)

// MalformedRecordError describes the row that failed to parse.
// Field is -1 when the row has the wrong number of fields.
type MalformedRecordError struct {
	Line    int
	Field   int
	Content string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	where := "record"
	if e.Line > 0 {
		where = fmt.Sprintf("line %d", e.Line)
	}
	if e.Field < 0 {
		return fmt.Sprintf("%s: %s: %v: %q", ErrMalformedRecord, where, e.Err, e.Content)
	}
	return fmt.Sprintf("%s: %s field %d: %v: %q", ErrMalformedRecord, where, e.Field, e.Err, e.Content)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

func (e *MalformedRecordError) Unwrap() error { return e.Err }
