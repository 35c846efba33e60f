package engine

import (
	"bufio"
	"crimestats/internal/models"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = "Year,Population,Violent crime total,Violent Crime rate,Murder and nonnegligent manslaughter,Murder and nonnegligent manslaughter rate,Rape,Rape rate,Robbery,Robbery rate,Aggravated assault,Aggravated assault rate,Property crime total,Property crime rate,Burglary,Burglary rate,Larceny-theft,Larceny-theft rate,Motor vehicle theft,Motor vehicle theft rate"

type captureLogger struct {
	infos, warns []string
}

func (l *captureLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Warnf(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func TestLoad(t *testing.T) {
	input := strings.Join([]string{
		header,
		row(2010, 100, map[models.Category]float64{models.Murder: 4.5}),
		row(2011, 110, map[models.Category]float64{models.Murder: 6.1}),
		row(2012, 99, map[models.Category]float64{models.Murder: 3.2}),
	}, "\n") + "\n"

	store, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if store.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", store.Len())
	}
	if store.At(0).Year != 2010 {
		t.Errorf("Row 0 Year: Expected 2010, got %d", store.At(0).Year)
	}
	if store.At(2).MurderRate != 3.2 {
		t.Errorf("Row 2 MurderRate: Expected 3.2, got %v", store.At(2).MurderRate)
	}
	if store.At(3) != nil {
		t.Error("At past the end should be nil")
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	store, err := Load(strings.NewReader(header + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Fatalf("Expected empty store, got %d rows", store.Len())
	}
	if _, err := store.MaxBy(models.Murder); !errors.Is(err, ErrNoData) {
		t.Errorf("MaxBy on empty store: want ErrNoData, got %v", err)
	}
}

func TestLoadHeaderIsNeverParsed(t *testing.T) {
	// a header that happens to be a valid row is still discarded
	input := row(1999, 1, nil) + "\n" + row(2000, 2, nil)
	store, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 || store.At(0).Year != 2000 {
		t.Fatalf("expected only the 2000 row, got %d rows", store.Len())
	}
}

func TestLoadCRLF(t *testing.T) {
	input := header + "\r\n" + row(2010, 100, nil) + "\r\n" + row(2011, 101, nil) + "\r\n"
	store, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", store.Len())
	}
}

func TestLoadMalformedAborts(t *testing.T) {
	short := strings.Join(strings.Split(row(2011, 1, nil), ",")[:19], ",")
	input := strings.Join([]string{header, row(2010, 1, nil), short, row(2012, 1, nil)}, "\n")

	store, err := Load(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
	if store != nil {
		t.Fatal("no store may be returned on a malformed row")
	}

	var me *MalformedRecordError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedRecordError, got %T", err)
	}
	if me.Line != 3 {
		t.Errorf("line: got %d, want 3", me.Line)
	}
	if me.Content != short {
		t.Errorf("content: got %q", me.Content)
	}
}

func TestLoadOverlongLineIsMalformed(t *testing.T) {
	long := strings.Repeat("9", bufio.MaxScanTokenSize+1)
	input := strings.Join([]string{header, row(2010, 1, nil), long, row(2012, 1, nil)}, "\n")

	_, err := Load(strings.NewReader(input))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
	if errors.Is(err, ErrSourceUnavailable) {
		t.Fatal("an overlong row is not an unreadable source")
	}

	var me *MalformedRecordError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedRecordError, got %T", err)
	}
	if me.Line != 3 {
		t.Errorf("line: got %d, want 3", me.Line)
	}
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("cause should be kept: %v", err)
	}
}

func TestLoadSkipMalformed(t *testing.T) {
	cols := strings.Split(row(2011, 1, nil), ",")
	cols[2] = "abc"
	input := strings.Join([]string{header, row(2010, 1, nil), strings.Join(cols, ","), row(2012, 1, nil)}, "\n")

	log := &captureLogger{}
	store, err := Load(strings.NewReader(input), WithSkipMalformed(true), WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", store.Len())
	}
	if store.At(1).Year != 2012 {
		t.Errorf("Row 1 Year: Expected 2012, got %d", store.At(1).Year)
	}
	if len(log.warns) != 2 {
		t.Fatalf("expected a warning per skipped row plus a summary, got %v", log.warns)
	}
	if !strings.Contains(log.warns[0], "line 3") {
		t.Errorf("warning should name the line: %q", log.warns[0])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crime.csv")
	content := header + "\n" + row(2010, 100, nil) + "\n" + row(2011, 110, nil) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	log := &captureLogger{}
	store, err := LoadFile(path, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", store.Len())
	}
	if len(log.infos) == 0 || !strings.Contains(log.infos[0], path) {
		t.Errorf("expected an open message naming the file, got %v", log.infos)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}
