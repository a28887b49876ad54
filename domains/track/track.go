package track

import (
	"context"
	"time"
)

// ITrackUsecase persists generated tracks (audio blob + metadata row) for
// authenticated users. Persistence is best-effort from the user's point of
// view: generation already succeeded, so bookkeeping failures are logged and
// reported through SaveOutcome rather than surfaced as errors.
type ITrackUsecase interface {
	Save(ctx context.Context, record GeneratedTrack, audio []byte) SaveOutcome
	ListByUser(ctx context.Context, userID string) ([]TrackResponse, error)
	// Delete removes the metadata row scoped to the owning user and
	// best-effort-removes the stored blob. A track owned by someone else is
	// indistinguishable from a missing one.
	Delete(ctx context.Context, trackID, userID string) (bool, error)
}

type GeneratedTrack struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Prompt      string    `json:"prompt"`
	Duration    int       `json:"duration"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at,omitempty"`

	// AccessToken is the caller's bearer token, forwarded to the backend so
	// row-level security applies. Never serialized.
	AccessToken string `json:"-"`
}

type TrackResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Prompt    string `json:"prompt"`
	Duration  int    `json:"duration"`
	FileURL   string `json:"file_url"`
	FileName  string `json:"file_name"`
	CreatedAt string `json:"created_at"`
}

// SaveOutcome distinguishes full success from "generation succeeded, metadata
// write failed". Track is always usable for the current request either way.
type SaveOutcome struct {
	Track     TrackResponse
	Persisted bool
}
