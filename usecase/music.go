package usecase

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	domainMusic "github.com/mraff116/vugru-music-mvp/domains/music"
	domainTrack "github.com/mraff116/vugru-music-mvp/domains/track"
	"github.com/mraff116/vugru-music-mvp/pkg/admission"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/mraff116/vugru-music-mvp/pkg/trackcache"
	"github.com/mraff116/vugru-music-mvp/validations"
	"github.com/sirupsen/logrus"
)

const recentPromptPreviewLen = 100

type musicService struct {
	generator   domainMusic.Generator
	credits     domainMusic.CreditsSource
	tracks      domainTrack.ITrackUsecase
	gate        *admission.Gate
	cache       *trackcache.Cache
	recentLimit int

	now func() time.Time
}

func NewMusicService(
	generator domainMusic.Generator,
	credits domainMusic.CreditsSource,
	tracks domainTrack.ITrackUsecase,
	gate *admission.Gate,
	cache *trackcache.Cache,
	recentLimit int,
) domainMusic.IMusicUsecase {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &musicService{
		generator:   generator,
		credits:     credits,
		tracks:      tracks,
		gate:        gate,
		cache:       cache,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// Generate runs the full pipeline: validate, admit one request per client,
// call the provider, persist best-effort and cache the result for replay.
func (s *musicService) Generate(ctx context.Context, request domainMusic.GenerateRequest) (domainMusic.GenerateResult, error) {
	if err := validations.ValidateGenerateMusic(ctx, request); err != nil {
		return domainMusic.GenerateResult{}, err
	}
	if !s.generator.IsConfigured() {
		return domainMusic.GenerateResult{}, pkgError.NotConfiguredError("music generation service is not configured")
	}

	if !s.gate.TryAdmit(request.ClientKey) {
		return domainMusic.GenerateResult{}, pkgError.RateLimitError(
			"a music generation request is already in progress, please wait for it to finish")
	}
	defer s.gate.Release(request.ClientKey)

	prompt := enhancePrompt(request)
	logrus.Infof("[MUSIC] generating %ds track for client %s", request.Duration, request.ClientKey)

	audio, err := s.generator.Generate(ctx, prompt, request.Duration)
	if err != nil {
		return domainMusic.GenerateResult{}, err
	}

	createdAt := s.now()
	trackID := trackIDFor(request.Prompt, request.Duration, createdAt)
	filename := fmt.Sprintf("vugru_track_%s.mp3", trackID)

	result := domainMusic.GenerateResult{
		TrackID:  trackID,
		Filename: filename,
		Prompt:   request.Prompt,
		Audio:    audio,
	}

	if request.UserID != "" {
		outcome := s.tracks.Save(ctx, domainTrack.GeneratedTrack{
			UserID:      request.UserID,
			Title:       titleFromPrompt(request.Prompt),
			Prompt:      request.Prompt,
			Duration:    request.Duration,
			FileName:    filename,
			AccessToken: request.AccessToken,
		}, audio)
		result.StorageURL = outcome.Track.FileURL
		result.Persisted = outcome.Persisted
	}

	s.cache.Put(trackcache.Track{
		ID:         trackID,
		Audio:      audio,
		Prompt:     request.Prompt,
		Duration:   request.Duration,
		Filename:   filename,
		StorageURL: result.StorageURL,
	})

	count, bytes := s.cache.Stats()
	logrus.Infof("[MUSIC] track %s generated (%s), cache holds %d tracks (%s)",
		trackID, humanize.Bytes(uint64(len(audio))), count, humanize.Bytes(uint64(bytes)))

	return result, nil
}

func (s *musicService) CachedTrack(ctx context.Context, trackID string) (domainMusic.CachedTrack, error) {
	cached, ok := s.cache.Get(trackID)
	if !ok {
		return domainMusic.CachedTrack{}, pkgError.NotFoundError("track not found or has expired")
	}
	return domainMusic.CachedTrack{
		ID:        cached.ID,
		Audio:     cached.Audio,
		Prompt:    cached.Prompt,
		Duration:  cached.Duration,
		Filename:  cached.Filename,
		CreatedAt: cached.CreatedAt,
	}, nil
}

func (s *musicService) RecentTracks(ctx context.Context) []domainMusic.RecentTrack {
	cached := s.cache.Recent(s.recentLimit)
	recent := make([]domainMusic.RecentTrack, 0, len(cached))
	for _, track := range cached {
		prompt := track.Prompt
		if runes := []rune(prompt); len(runes) > recentPromptPreviewLen {
			prompt = string(runes[:recentPromptPreviewLen]) + "..."
		}
		recent = append(recent, domainMusic.RecentTrack{
			ID:        track.ID,
			Filename:  track.Filename,
			Duration:  track.Duration,
			Prompt:    prompt,
			CreatedAt: track.CreatedAt,
		})
	}
	return recent
}

func (s *musicService) Credits(ctx context.Context) (map[string]any, error) {
	return s.credits.Subscription(ctx)
}

// trackIDFor derives a short id from the request. The timestamp keeps two
// identical prompts from colliding in the cache.
func trackIDFor(prompt string, durationSeconds int, at time.Time) string {
	seed := fmt.Sprintf("%s_%d_%d", prompt, durationSeconds, at.UnixNano())
	return fmt.Sprintf("%x", md5.Sum([]byte(seed)))[:8]
}

// enhancePrompt decorates the user prompt with production hints: the exact
// duration, seamless loop points and (by default) no vocals.
func enhancePrompt(request domainMusic.GenerateRequest) string {
	var b strings.Builder
	b.WriteString(request.Prompt)
	fmt.Fprintf(&b, ". The track must be exactly %d seconds long", request.Duration)
	b.WriteString(" and loop seamlessly from end back to beginning.")
	if request.VocalsMode != domainMusic.VocalsModeVocals {
		b.WriteString(" Instrumental only, no vocals or singing.")
	}
	return b.String()
}

func titleFromPrompt(prompt string) string {
	title := strings.TrimSpace(prompt)
	if len(title) > 50 {
		title = title[:50]
	}
	if title == "" {
		title = "Untitled track"
	}
	return title
}
