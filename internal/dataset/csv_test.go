package dataset

import (
	"strings"
	"testing"
)

const spotifyHeader = "track_id,track_name,track_artist,track_popularity,track_album_id," +
	"playlist_genre,playlist_subgenre,danceability,energy,tempo\n"

func TestParseCSV_SpotifyRows(t *testing.T) {
	data := spotifyHeader +
		"6f807x0ima9a1j3VPbc7VN,I Don't Care (with Justin Bieber),Ed Sheeran,66,2oCs0DGTsRO98Gh5ZSl2Cx,pop,dance pop,0.748,0.916,122.036\n" +
		"0r7CVbZTWZgbTCYdfa2P31,Memories - Dillon Francis Remix,Maroon 5,67,63rPSO264uRjW1X5E6cWv6,pop,dance pop,0.726,0.815,99.972\n"

	res, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(res.Songs))
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}

	s := res.Songs[0]
	if s.ID() != "6f807x0ima9a1j3VPbc7VN" || s.Artist() != "Ed Sheeran" ||
		s.Genre() != "pop" || s.Subgenre() != "dance pop" {
		t.Errorf("unexpected song: id=%q artist=%q genre=%q sub=%q", s.ID(), s.Artist(), s.Genre(), s.Subgenre())
	}
	if s.Title() != "I Don't Care (with Justin Bieber)" {
		t.Errorf("Title() = %q", s.Title())
	}
	if v, ok := s.Popularity(); !ok || v != 66 {
		t.Errorf("Popularity() = %d, %v", v, ok)
	}
	if v, ok := s.Tempo(); !ok || v != float32(122.036) {
		t.Errorf("Tempo() = %f, %v", v, ok)
	}
}

func TestParseCSV_OptionalColumnsMissing(t *testing.T) {
	data := "track_id,track_name,track_artist,playlist_genre,playlist_subgenre\n" +
		"1,One More Time,Daft Punk,edm,house\n"

	res, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 1 {
		t.Fatalf("expected 1 song, got %d", len(res.Songs))
	}
	if _, ok := res.Songs[0].Popularity(); ok {
		t.Error("Popularity() should be absent")
	}
}

func TestParseCSV_EmptyAndNANumericsAreAbsent(t *testing.T) {
	data := spotifyHeader +
		"1,t,a,,alb,pop,pop,NA,,120\n"

	res, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 1 {
		t.Fatalf("expected 1 song, got %d (skipped %d)", len(res.Songs), res.Skipped)
	}
	s := res.Songs[0]
	if _, ok := s.Popularity(); ok {
		t.Error("Popularity() should be absent")
	}
	if _, ok := s.Danceability(); ok {
		t.Error("Danceability() should be absent")
	}
	if _, ok := s.Energy(); ok {
		t.Error("Energy() should be absent")
	}
	if v, ok := s.Tempo(); !ok || v != 120 {
		t.Errorf("Tempo() = %f, %v", v, ok)
	}
}

func TestParseCSV_SkipsBadRows(t *testing.T) {
	data := spotifyHeader +
		"1,good,a,50,alb,pop,pop,0.5,0.5,100\n" +
		",no id,a,50,alb,pop,pop,0.5,0.5,100\n" +
		"3,bad popularity,a,lots,alb,pop,pop,0.5,0.5,100\n" +
		"4,bad \"quote,a,50,alb,pop,pop,0.5,0.5,100\n" +
		"5,good too,a,50,alb,rock,hard rock,0.5,0.5,100\n"

	res, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(res.Songs))
	}
	if res.Songs[0].ID() != "1" || res.Songs[1].ID() != "5" {
		t.Errorf("unexpected ids: %q, %q", res.Songs[0].ID(), res.Songs[1].ID())
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	data := "track_id,track_name,playlist_genre,playlist_subgenre\n1,t,pop,pop\n"

	_, err := Parse([]byte(data), FormatCSV, Options{})
	if err == nil {
		t.Fatal("expected error for missing track_artist column")
	}
	if !strings.Contains(err.Error(), "track_artist") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, err := Parse(nil, FormatCSV, Options{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	res, err := Parse([]byte(spotifyHeader), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 0 {
		t.Errorf("expected 0 songs, got %d", len(res.Songs))
	}
}

func TestParseCSV_Dedupe(t *testing.T) {
	data := spotifyHeader +
		"1,first,a,50,alb,pop,pop,0.5,0.5,100\n" +
		"1,again,a,50,alb,rock,rock,0.5,0.5,100\n" +
		"2,other,a,50,alb,pop,pop,0.5,0.5,100\n"

	kept, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kept.Songs) != 3 {
		t.Errorf("without dedupe expected 3 songs, got %d", len(kept.Songs))
	}

	deduped, err := Parse([]byte(data), FormatCSV, Options{Dedupe: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deduped.Songs) != 2 {
		t.Fatalf("with dedupe expected 2 songs, got %d", len(deduped.Songs))
	}
	if deduped.Songs[0].Title() != "first" {
		t.Errorf("first occurrence should win, got %q", deduped.Songs[0].Title())
	}
	if deduped.Dupes != 1 {
		t.Errorf("Dupes = %d, want 1", deduped.Dupes)
	}
}

func TestParseCSV_MaxRows(t *testing.T) {
	data := spotifyHeader +
		"1,a,a,50,alb,pop,pop,0.5,0.5,100\n" +
		"2,b,a,50,alb,pop,pop,0.5,0.5,100\n" +
		"3,c,a,50,alb,pop,pop,0.5,0.5,100\n"

	res, err := Parse([]byte(data), FormatCSV, Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 2 {
		t.Errorf("expected 2 songs, got %d", len(res.Songs))
	}
}

func TestParseCSV_BOMHeader(t *testing.T) {
	data := "\ufefftrack_id,track_name,track_artist,playlist_genre,playlist_subgenre\n1,t,a,pop,pop\n"

	res, err := Parse([]byte(data), FormatCSV, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Songs) != 1 || res.Songs[0].ID() != "1" {
		t.Errorf("unexpected result: %+v", res)
	}
}
