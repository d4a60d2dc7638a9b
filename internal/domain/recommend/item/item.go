package item

import "github.com/kailas-cloud/songrec/internal/domain/song"

// Item is a recommended track as exposed to callers. Ranking is carried by order only.
type Item struct {
	id     string
	title  string
	artist string
	genre  string
	year   *int
}

// FromSong projects a catalog record into a result item.
// The current data source has no release year, so Year is always absent.
func FromSong(s *song.Song) Item {
	return Item{
		id:     s.ID(),
		title:  s.Title(),
		artist: s.Artist(),
		genre:  s.Genre(),
	}
}

// New creates an item directly, e.g. when hydrating from a data source that knows the year.
func New(id, title, artist, genre string, year *int) Item {
	return Item{id: id, title: title, artist: artist, genre: genre, year: year}
}

// ID returns the track identifier.
func (i *Item) ID() string { return i.id }

// Title returns the track title.
func (i *Item) Title() string { return i.title }

// Artist returns the performing artist.
func (i *Item) Artist() string { return i.artist }

// Genre returns the primary genre.
func (i *Item) Genre() string { return i.genre }

// Year returns the release year, if known.
func (i *Item) Year() (int, bool) {
	if i.year == nil {
		return 0, false
	}
	return *i.year, true
}
