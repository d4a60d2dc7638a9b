package item

import (
	"testing"

	"github.com/kailas-cloud/songrec/internal/domain/song"
)

func TestFromSong(t *testing.T) {
	s, err := song.New("1", "One More Time", "Daft Punk", "edm", "house", song.WithPopularity(80))
	if err != nil {
		t.Fatalf("song.New: %v", err)
	}

	it := FromSong(&s)
	if it.ID() != "1" || it.Title() != "One More Time" || it.Artist() != "Daft Punk" || it.Genre() != "edm" {
		t.Errorf("unexpected projection: %+v", it)
	}
	if _, ok := it.Year(); ok {
		t.Error("Year() should be absent for catalog songs")
	}
}

func TestNew_WithYear(t *testing.T) {
	y := 2001
	it := New("1", "t", "a", "g", &y)
	if v, ok := it.Year(); !ok || v != 2001 {
		t.Errorf("Year() = %d, %v", v, ok)
	}
}
