// Package dataset parses tabular song datasets into catalog records.
//
// Column names follow the public Spotify songs dataset:
// track_id, track_name, track_artist, track_popularity, playlist_genre,
// playlist_subgenre, danceability, energy, tempo.
package dataset

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/kailas-cloud/songrec/internal/domain"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// Format is a dataset file format.
type Format string

const (
	// FormatCSV is comma-separated text with a header row.
	FormatCSV Format = "csv"
	// FormatParquet is an Apache Parquet file.
	FormatParquet Format = "parquet"
)

// ParseFormat validates a configured format name. Empty means "detect from URL".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "":
		return "", nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// DetectFormat infers the format from the file extension of a URL or path.
func DetectFormat(source string) (Format, error) {
	p := source
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: cannot detect format of %q", domain.ErrUnsupportedFormat, source)
	}
}

// Options controls row handling during parsing.
type Options struct {
	// Dedupe drops records whose track_id was already seen (first occurrence wins).
	Dedupe bool
	// MaxRows stops parsing after this many accepted records. 0 means no limit.
	MaxRows int
}

// Result is the outcome of parsing one dataset.
type Result struct {
	Songs   []song.Song
	Skipped int // malformed rows and rows without an identifier
	Dupes   int // rows dropped by Dedupe
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format, opts Options) (Result, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data, opts)
	case FormatParquet:
		return parseParquet(data, opts)
	default:
		return Result{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// collector accumulates accepted songs and applies Options.
type collector struct {
	opts Options
	res  Result
	seen map[string]struct{}
}

func newCollector(opts Options) *collector {
	c := &collector{opts: opts}
	if opts.Dedupe {
		c.seen = make(map[string]struct{})
	}
	return c
}

// full reports whether MaxRows has been reached.
func (c *collector) full() bool {
	return c.opts.MaxRows > 0 && len(c.res.Songs) >= c.opts.MaxRows
}

func (c *collector) skip() { c.res.Skipped++ }

func (c *collector) add(s song.Song) {
	if c.seen != nil {
		if _, dup := c.seen[s.ID()]; dup {
			c.res.Dupes++
			return
		}
		c.seen[s.ID()] = struct{}{}
	}
	c.res.Songs = append(c.res.Songs, s)
}
