package song

import (
	"fmt"

	"github.com/kailas-cloud/songrec/internal/domain"
)

// Song is a single catalog record (immutable value object).
type Song struct {
	id           string
	title        string
	artist       string
	genre        string
	subgenre     string
	popularity   *uint32
	danceability *float32
	energy       *float32
	tempo        *float32
}

// Option sets an optional attribute on a Song during construction.
type Option func(*Song)

// WithPopularity sets the popularity score.
func WithPopularity(v uint32) Option {
	return func(s *Song) { s.popularity = &v }
}

// WithDanceability sets the danceability audio attribute.
func WithDanceability(v float32) Option {
	return func(s *Song) { s.danceability = &v }
}

// WithEnergy sets the energy audio attribute.
func WithEnergy(v float32) Option {
	return func(s *Song) { s.energy = &v }
}

// WithTempo sets the tempo audio attribute (BPM).
func WithTempo(v float32) Option {
	return func(s *Song) { s.tempo = &v }
}

// New validates and creates a Song. The identifier must be non-empty.
func New(id, title, artist, genre, subgenre string, opts ...Option) (Song, error) {
	if id == "" {
		return Song{}, fmt.Errorf("%w: id is required", domain.ErrInvalidSong)
	}
	s := Song{
		id:       id,
		title:    title,
		artist:   artist,
		genre:    genre,
		subgenre: subgenre,
	}
	for _, o := range opts {
		o(&s)
	}
	return s, nil
}

// ID returns the track identifier.
func (s *Song) ID() string { return s.id }

// Title returns the track title.
func (s *Song) Title() string { return s.title }

// Artist returns the performing artist.
func (s *Song) Artist() string { return s.artist }

// Genre returns the primary genre.
func (s *Song) Genre() string { return s.genre }

// Subgenre returns the subgenre.
func (s *Song) Subgenre() string { return s.subgenre }

// Popularity returns the popularity score, if known.
func (s *Song) Popularity() (uint32, bool) { return deref(s.popularity) }

// Danceability returns the danceability attribute, if known.
func (s *Song) Danceability() (float32, bool) { return deref(s.danceability) }

// Energy returns the energy attribute, if known.
func (s *Song) Energy() (float32, bool) { return deref(s.energy) }

// Tempo returns the tempo attribute, if known.
func (s *Song) Tempo() (float32, bool) { return deref(s.tempo) }

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
