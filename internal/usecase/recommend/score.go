package recommend

import (
	"slices"
	"strings"

	domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// Match weights. Bonuses are additive: a record can earn all three.
const (
	artistWeight   = 10
	genreWeight    = 8
	subgenreWeight = 5
)

// candidate is a matched record position in the snapshot with its score.
type candidate struct {
	pos   int
	score int
}

// score rates one record against lower-cased hints. Empty hints contribute nothing.
func score(s *song.Song, artistHint, genreHint string) int {
	total := 0
	if artistHint != "" && strings.Contains(strings.ToLower(s.Artist()), artistHint) {
		total += artistWeight
	}
	if genreHint != "" {
		if strings.Contains(strings.ToLower(s.Genre()), genreHint) {
			total += genreWeight
		}
		if strings.Contains(strings.ToLower(s.Subgenre()), genreHint) {
			total += subgenreWeight
		}
	}
	return total
}

// rank scores every record of snap, drops non-matches and orders the rest by
// descending score. Equal scores keep snapshot (load) order.
func rank(snap domcat.Snapshot, artistHint, genreHint string) []candidate {
	var matched []candidate
	for i := 0; i < snap.Len(); i++ {
		if sc := score(snap.At(i), artistHint, genreHint); sc > 0 {
			matched = append(matched, candidate{pos: i, score: sc})
		}
	}

	slices.SortStableFunc(matched, func(a, b candidate) int {
		return b.score - a.score
	})
	return matched
}
