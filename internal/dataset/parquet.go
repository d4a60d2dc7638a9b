package dataset

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// parquetRow is a raw row of a songs parquet file.
type parquetRow struct {
	TrackID          string   `parquet:"track_id"`
	TrackName        string   `parquet:"track_name"`
	TrackArtist      string   `parquet:"track_artist"`
	TrackPopularity  *int64   `parquet:"track_popularity,optional"`
	PlaylistGenre    string   `parquet:"playlist_genre"`
	PlaylistSubgenre string   `parquet:"playlist_subgenre"`
	Danceability     *float64 `parquet:"danceability,optional"`
	Energy           *float64 `parquet:"energy,optional"`
	Tempo            *float64 `parquet:"tempo,optional"`
}

func parseParquet(data []byte, opts Options) (Result, error) {
	rows, err := parquet.Read[parquetRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("parquet: read rows: %w", err)
	}

	c := newCollector(opts)
	for i := range rows {
		if c.full() {
			break
		}
		s, ok := songFromParquet(&rows[i])
		if !ok {
			c.skip()
			continue
		}
		c.add(s)
	}
	return c.res, nil
}

func songFromParquet(r *parquetRow) (song.Song, bool) {
	var opts []song.Option
	if r.TrackPopularity != nil {
		if *r.TrackPopularity < 0 || *r.TrackPopularity > int64(^uint32(0)) {
			return song.Song{}, false
		}
		opts = append(opts, song.WithPopularity(uint32(*r.TrackPopularity)))
	}
	if r.Danceability != nil {
		opts = append(opts, song.WithDanceability(float32(*r.Danceability)))
	}
	if r.Energy != nil {
		opts = append(opts, song.WithEnergy(float32(*r.Energy)))
	}
	if r.Tempo != nil {
		opts = append(opts, song.WithTempo(float32(*r.Tempo)))
	}

	s, err := song.New(r.TrackID, r.TrackName, r.TrackArtist, r.PlaylistGenre, r.PlaylistSubgenre, opts...)
	if err != nil {
		return song.Song{}, false
	}
	return s, true
}
