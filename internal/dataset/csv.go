package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/songrec/internal/domain/song"
)

const (
	colID           = "track_id"
	colTitle        = "track_name"
	colArtist       = "track_artist"
	colPopularity   = "track_popularity"
	colGenre        = "playlist_genre"
	colSubgenre     = "playlist_subgenre"
	colDanceability = "danceability"
	colEnergy       = "energy"
	colTempo        = "tempo"
)

var requiredColumns = []string{colID, colTitle, colArtist, colGenre, colSubgenre}

// csvColumns maps column names to header positions (-1 when absent).
type csvColumns map[string]int

func (c csvColumns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCSV(data []byte, opts Options) (Result, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("csv: missing header row")
		}
		return Result{}, fmt.Errorf("csv: read header: %w", err)
	}

	cols := make(csvColumns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return Result{}, fmt.Errorf("csv: required column %q not found", name)
		}
	}

	c := newCollector(opts)
	for !c.full() {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				c.skip()
				continue
			}
			return Result{}, fmt.Errorf("csv: read row: %w", err)
		}

		s, ok := songFromCSV(cols, row)
		if !ok {
			c.skip()
			continue
		}
		c.add(s)
	}
	return c.res, nil
}

// songFromCSV converts one row. Empty or "NA" numerics are absent; any other
// unparseable numeric rejects the row.
func songFromCSV(cols csvColumns, row []string) (song.Song, bool) {
	var opts []song.Option

	if v, present, ok := parseOptional(cols.get(row, colPopularity), parseUint32); !ok {
		return song.Song{}, false
	} else if present {
		opts = append(opts, song.WithPopularity(v))
	}
	if v, present, ok := parseOptional(cols.get(row, colDanceability), parseFloat32); !ok {
		return song.Song{}, false
	} else if present {
		opts = append(opts, song.WithDanceability(v))
	}
	if v, present, ok := parseOptional(cols.get(row, colEnergy), parseFloat32); !ok {
		return song.Song{}, false
	} else if present {
		opts = append(opts, song.WithEnergy(v))
	}
	if v, present, ok := parseOptional(cols.get(row, colTempo), parseFloat32); !ok {
		return song.Song{}, false
	} else if present {
		opts = append(opts, song.WithTempo(v))
	}

	s, err := song.New(
		cols.get(row, colID),
		cols.get(row, colTitle),
		cols.get(row, colArtist),
		cols.get(row, colGenre),
		cols.get(row, colSubgenre),
		opts...,
	)
	if err != nil {
		return song.Song{}, false
	}
	return s, true
}

// parseOptional returns (value, present, ok).
func parseOptional[T any](raw string, parse func(string) (T, error)) (T, bool, bool) {
	var zero T
	if raw == "" || strings.EqualFold(raw, "NA") {
		return zero, false, true
	}
	v, err := parse(raw)
	if err != nil {
		return zero, false, false
	}
	return v, true, true
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse uint: %w", err)
	}
	return uint32(v), nil
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("parse float: %w", err)
	}
	return float32(v), nil
}
