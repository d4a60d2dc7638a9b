package chi

import (
	"time"

	"github.com/kailas-cloud/songrec/internal/domain/recommend/item"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed   ErrorCode = "method_not_allowed"
	ErrorCodeRateLimited        ErrorCode = "rate_limited"
	ErrorCodeServiceUnavailable ErrorCode = "service_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// MessageResponse is the root greeting.
type MessageResponse struct {
	Message string `json:"message"`
}

// RecommendationItem is one entry of GET /recommendations.
type RecommendationItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	PrimaryGenre string `json:"primary_genre"`
	Year         *int   `json:"year"`
}

// SongResponse is a raw catalog record as returned by GET /songs.
type SongResponse struct {
	TrackID          string   `json:"track_id"`
	TrackName        string   `json:"track_name"`
	TrackArtist      string   `json:"track_artist"`
	TrackPopularity  *uint32  `json:"track_popularity"`
	PlaylistGenre    string   `json:"playlist_genre"`
	PlaylistSubgenre string   `json:"playlist_subgenre"`
	Danceability     *float32 `json:"danceability"`
	Energy           *float32 `json:"energy"`
	Tempo            *float32 `json:"tempo"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Songs    int               `json:"songs"`
	Version  uint64            `json:"catalog_version"`
	LoadedAt *time.Time        `json:"loaded_at,omitempty"`
	Checks   map[string]string `json:"checks"`
}

func itemToResponse(it *item.Item) RecommendationItem {
	resp := RecommendationItem{
		ID:           it.ID(),
		Title:        it.Title(),
		Artist:       it.Artist(),
		PrimaryGenre: it.Genre(),
	}
	if y, ok := it.Year(); ok {
		resp.Year = &y
	}
	return resp
}

func songToResponse(s *song.Song) SongResponse {
	return SongResponse{
		TrackID:          s.ID(),
		TrackName:        s.Title(),
		TrackArtist:      s.Artist(),
		TrackPopularity:  optional(s.Popularity()),
		PlaylistGenre:    s.Genre(),
		PlaylistSubgenre: s.Subgenre(),
		Danceability:     optional(s.Danceability()),
		Energy:           optional(s.Energy()),
		Tempo:            optional(s.Tempo()),
	}
}

func optional[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
