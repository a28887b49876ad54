package music

import (
	"context"
	"time"
)

// Vocals modes accepted by the generation endpoint.
const (
	VocalsModeInstrumental = "instrumental"
	VocalsModeVocals       = "vocals"
)

// IMusicUsecase coordinates generation requests: single-flight admission per
// client, the outbound provider call, best-effort persistence and the
// short-lived track cache.
type IMusicUsecase interface {
	Generate(ctx context.Context, request GenerateRequest) (GenerateResult, error)
	CachedTrack(ctx context.Context, trackID string) (CachedTrack, error)
	RecentTracks(ctx context.Context) []RecentTrack
	Credits(ctx context.Context) (map[string]any, error)
}

// Generator is the outbound music generation call. Implementations classify
// provider failures into the typed errors of pkg/error and perform no
// retries; callers decide.
type Generator interface {
	Generate(ctx context.Context, prompt string, durationSeconds int) ([]byte, error)
	IsConfigured() bool
}

// CreditsSource reports the provider subscription / remaining credits.
type CreditsSource interface {
	Subscription(ctx context.Context) (map[string]any, error)
}

type GenerateRequest struct {
	Prompt     string `json:"prompt"`
	Duration   int    `json:"duration"`
	VocalsMode string `json:"vocals_mode"`

	// Populated by the HTTP layer, never from the request body.
	ClientKey   string `json:"-"`
	UserID      string `json:"-"`
	AccessToken string `json:"-"`
}

type GenerateResult struct {
	TrackID    string
	Filename   string
	Prompt     string
	StorageURL string
	Audio      []byte
	// Persisted is false when the metadata write or upload failed; the audio
	// is still returned to the caller.
	Persisted bool
}

type CachedTrack struct {
	ID        string
	Audio     []byte
	Prompt    string
	Duration  int
	Filename  string
	CreatedAt time.Time
}

type RecentTrack struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Duration  int       `json:"duration"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}
