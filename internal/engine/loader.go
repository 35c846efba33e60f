package engine

import (
	"bufio"
	"crimestats/internal/models"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
)

// Logger is the subset of the application logger the loader writes to.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{}) {}

type loadConfig struct {
	log           Logger
	skipMalformed bool
}

type LoadOption func(*loadConfig)

// WithLogger reports load progress to l.
func WithLogger(l Logger) LoadOption {
	return func(c *loadConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSkipMalformed makes Load drop malformed rows with a warning
// instead of failing on the first one.
func WithSkipMalformed(skip bool) LoadOption {
	return func(c *loadConfig) { c.skipMalformed = skip }
}

// Load reads a header line followed by data rows from r.
// The header is discarded without parsing. By default the first malformed
// row aborts the load and no store is returned.
func Load(r io.Reader, opts ...LoadOption) (*Store, error) {
	cfg := loadConfig{log: nopLogger{}}
	for _, o := range opts {
		o(&cfg)
	}

	var recs []models.CrimeRecord
	sc := bufio.NewScanner(r)
	lineNo := 0
	skipped := 0

	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := strings.TrimSuffix(sc.Text(), "\r")

		rec, err := ParseRecord(line)
		if err != nil {
			var me *MalformedRecordError
			if errors.As(err, &me) {
				me.Line = lineNo
			}
			if !cfg.skipMalformed {
				return nil, err
			}
			cfg.log.Warnf("skipping %v", err)
			skipped++
			continue
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		// the scanner stopped on the line after the last one it returned
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &MalformedRecordError{Line: lineNo + 1, Field: -1, Err: err}
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if skipped > 0 {
		cfg.log.Warnf("skipped %d malformed rows", skipped)
	}
	return NewStore(recs), nil
}

// LoadFile opens path, loads it and closes it on every exit path.
func LoadFile(path string, opts ...LoadOption) (*Store, error) {
	cfg := loadConfig{log: nopLogger{}}
	for _, o := range opts {
		o(&cfg)
	}

	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			cfg.log.Warnf("closing %s: %v", path, err)
		}
	}()

	size := "unknown size"
	if fi, err := f.Stat(); err == nil {
		size = bytes.Format(fi.Size())
	}
	cfg.log.Infof("File opened: %s (%s)", path, size)

	store, err := Load(f, opts...)
	if err != nil {
		return nil, err
	}

	cfg.log.Infof("Load complete. Rows: %d. Time: %v", store.Len(), time.Since(start))
	return store, nil
}
