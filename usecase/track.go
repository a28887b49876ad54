package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainTrack "github.com/mraff116/vugru-music-mvp/domains/track"
	"github.com/mraff116/vugru-music-mvp/infrastructure/supabase"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/sirupsen/logrus"
)

type trackService struct {
	backend *supabase.Client
}

func NewTrackService(backend *supabase.Client) domainTrack.ITrackUsecase {
	return &trackService{backend: backend}
}

// Save uploads the audio blob, signs a download URL and inserts the metadata
// row. Any failure is logged and answered with a synthesized record so the
// caller can still hand the audio to the user.
func (s *trackService) Save(ctx context.Context, record domainTrack.GeneratedTrack, audio []byte) domainTrack.SaveOutcome {
	fallback := domainTrack.SaveOutcome{
		Track: domainTrack.TrackResponse{
			ID:        record.ID,
			Title:     record.Title,
			Prompt:    record.Prompt,
			Duration:  record.Duration,
			FileName:  record.FileName,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Persisted: false,
	}

	if !s.backend.IsConfigured() {
		logrus.Debug("[TRACK] storage backend not configured, skipping persistence")
		return fallback
	}
	if record.UserID == "" {
		return fallback
	}

	storagePath := fmt.Sprintf("%s/%s.mp3", record.UserID, uuid.NewString())
	if err := s.backend.UploadObject(ctx, storagePath, "audio/mpeg", audio); err != nil {
		logrus.WithError(err).Error("[TRACK] failed to upload audio")
		return fallback
	}

	fileURL := s.backend.SignObjectURL(ctx, storagePath)
	fallback.Track.FileURL = fileURL

	row, err := s.backend.InsertTrack(ctx, record.AccessToken, supabase.TrackRow{
		UserID:      record.UserID,
		Title:       record.Title,
		Prompt:      record.Prompt,
		Duration:    record.Duration,
		FileURL:     fileURL,
		FileName:    record.FileName,
		StoragePath: storagePath,
	})
	if err != nil {
		logrus.WithError(err).Error("[TRACK] failed to insert track metadata")
		return fallback
	}

	return domainTrack.SaveOutcome{
		Track:     toTrackResponse(row),
		Persisted: true,
	}
}

// ListByUser returns the user's saved tracks, newest first. A failing query
// degrades to an empty library rather than an error page.
func (s *trackService) ListByUser(ctx context.Context, userID string) ([]domainTrack.TrackResponse, error) {
	if !s.backend.IsConfigured() {
		return nil, pkgError.NotConfiguredError("track storage is not configured")
	}

	rows, err := s.backend.ListTracks(ctx, "", userID)
	if err != nil {
		logrus.WithError(err).Warnf("[TRACK] failed to list tracks for user %s", userID)
		return []domainTrack.TrackResponse{}, nil
	}

	tracks := make([]domainTrack.TrackResponse, 0, len(rows))
	for _, row := range rows {
		tracks = append(tracks, toTrackResponse(row))
	}
	return tracks, nil
}

func (s *trackService) Delete(ctx context.Context, trackID, userID string) (bool, error) {
	if !s.backend.IsConfigured() {
		return false, pkgError.NotConfiguredError("track storage is not configured")
	}

	row, err := s.backend.DeleteTrack(ctx, "", trackID, userID)
	if err != nil {
		logrus.WithError(err).Errorf("[TRACK] failed to delete track %s", trackID)
		return false, pkgError.UpstreamError("failed to delete track")
	}
	if row == nil {
		return false, nil
	}

	if row.StoragePath != "" {
		if err := s.backend.RemoveObject(ctx, row.StoragePath); err != nil {
			logrus.WithError(err).Warnf("[TRACK] metadata for %s deleted but blob removal failed", trackID)
		}
	}
	return true, nil
}

func toTrackResponse(row supabase.TrackRow) domainTrack.TrackResponse {
	return domainTrack.TrackResponse{
		ID:        row.ID,
		Title:     row.Title,
		Prompt:    row.Prompt,
		Duration:  row.Duration,
		FileURL:   row.FileURL,
		FileName:  row.FileName,
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
	}
}
