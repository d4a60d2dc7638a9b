package recommend

import (
	"testing"
	"time"

	domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

func TestScore(t *testing.T) {
	s, err := song.New("1", "Around the World", "Daft Punk", "EDM", "French House")
	if err != nil {
		t.Fatalf("song.New: %v", err)
	}

	tests := []struct {
		name   string
		artist string
		genre  string
		want   int
	}{
		{"no hints", "", "", 0},
		{"artist substring", "daft", "", 10},
		{"artist full", "daft punk", "", 10},
		{"artist miss", "queen", "", 0},
		{"genre primary", "", "edm", 8},
		{"genre subgenre", "", "house", 5},
		{"genre matches both", "", "e", 13},
		{"all three", "punk", "e", 23},
		{"artist hint not checked against genre", "house", "", 0},
		{"genre hint not checked against artist", "", "daft", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := score(&s, tc.artist, tc.genre); got != tc.want {
				t.Errorf("score(%q, %q) = %d, want %d", tc.artist, tc.genre, got, tc.want)
			}
		})
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	var songs []song.Song
	for _, id := range []string{"a", "b", "c", "d"} {
		s, _ := song.New(id, "t", "Artist", "pop", "pop")
		songs = append(songs, s)
	}
	// "c" scores higher (artist + genre); the rest tie at 10 and keep load order.
	hi, _ := song.New("c", "t", "Artist", "rock", "rock")
	songs[2] = hi

	snap := domcat.NewSnapshot(songs, 1, time.Now())
	got := rank(snap, "artist", "rock")

	wantPos := []int{2, 0, 1, 3}
	if len(got) != len(wantPos) {
		t.Fatalf("rank len = %d, want %d", len(got), len(wantPos))
	}
	for i, c := range got {
		if c.pos != wantPos[i] {
			t.Errorf("rank[%d].pos = %d, want %d", i, c.pos, wantPos[i])
		}
	}
	if got[0].score != 23 {
		t.Errorf("top score = %d, want 23", got[0].score)
	}
}
