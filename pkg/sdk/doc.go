// Package songrec embeds the song recommendation engine in a Go program.
//
// The client loads a song dataset (CSV or Parquet, local or remote) into
// memory and answers artist/genre queries against it without an HTTP hop:
//
//	client, err := songrec.New(ctx,
//	    songrec.WithDataset("https://example.com/spotify_songs.csv"),
//	    songrec.WithResultCache(1024),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	recs, _ := client.Recommend(ctx, songrec.Query{Artist: "daft punk", Limit: songrec.Limit(5)})
//
// Remote datasets can be cached in Valkey or Redis so restarts skip the
// download (WithValkeyCache, WithRedisCache). Reload fetches the dataset
// again and swaps the catalog atomically; queries in flight keep the
// snapshot they started with.
package songrec
