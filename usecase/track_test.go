package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraff116/vugru-music-mvp/config"
	domainTrack "github.com/mraff116/vugru-music-mvp/domains/track"
	"github.com/mraff116/vugru-music-mvp/infrastructure/supabase"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
)

func newBackend(t *testing.T, handler http.Handler) *supabase.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return supabase.NewClient(config.SupabaseConfig{
		URL:           server.URL,
		AnonKey:       "anon-key",
		StorageBucket: "music-tracks",
		TracksTable:   "user_tracks",
	})
}

func TestSave_UploadsSignsAndInserts(t *testing.T) {
	var uploadedPath string
	var insertedRow map[string]any

	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/sign/"):
			json.NewEncoder(w).Encode(map[string]string{"signedURL": "/object/sign/music-tracks/x?token=abc"})
		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
			uploadedPath = strings.TrimPrefix(r.URL.Path, "/storage/v1/object/music-tracks/")
			if got := r.Header.Get("Content-Type"); got != "audio/mpeg" {
				t.Errorf("unexpected upload content type %q", got)
			}
			w.WriteHeader(http.StatusOK)
		case strings.HasPrefix(r.URL.Path, "/rest/v1/user_tracks"):
			require.NoError(t, json.NewDecoder(r.Body).Decode(&insertedRow))
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
			assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
			json.NewEncoder(w).Encode([]map[string]any{{
				"id":         "row-1",
				"user_id":    insertedRow["user_id"],
				"title":      insertedRow["title"],
				"file_url":   insertedRow["file_url"],
				"file_name":  insertedRow["file_name"],
				"created_at": "2026-08-31T10:00:00Z",
			}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	service := NewTrackService(backend)
	outcome := service.Save(context.Background(), domainTrack.GeneratedTrack{
		UserID:      "user-1",
		Title:       "calm lo-fi beat",
		Prompt:      "calm lo-fi beat",
		Duration:    20,
		FileName:    "vugru_track_deadbeef.mp3",
		AccessToken: "user-token",
	}, []byte("mp3-bytes"))

	assert.True(t, outcome.Persisted)
	assert.Equal(t, "row-1", outcome.Track.ID)
	assert.True(t, strings.HasPrefix(uploadedPath, "user-1/"), "blob path %q must be scoped to the user", uploadedPath)
	assert.True(t, strings.HasSuffix(uploadedPath, ".mp3"))
	assert.Contains(t, insertedRow["file_url"], "/storage/v1/object/sign/")
}

func TestSave_UploadFailureIsNotFatal(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	service := NewTrackService(backend)
	outcome := service.Save(context.Background(), domainTrack.GeneratedTrack{
		UserID:   "user-1",
		Title:    "beat",
		FileName: "vugru_track_deadbeef.mp3",
	}, []byte("mp3"))

	assert.False(t, outcome.Persisted)
	assert.Equal(t, "vugru_track_deadbeef.mp3", outcome.Track.FileName)
}

func TestSave_UnconfiguredBackendSkipsPersistence(t *testing.T) {
	service := NewTrackService(supabase.NewClient(config.SupabaseConfig{}))
	outcome := service.Save(context.Background(), domainTrack.GeneratedTrack{UserID: "user-1"}, []byte("mp3"))
	assert.False(t, outcome.Persisted)
}

func TestListByUser(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/user_tracks", r.URL.Path)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "row-2", "title": "newer", "created_at": "2026-08-31T11:00:00Z"},
			{"id": "row-1", "title": "older", "created_at": "2026-08-31T10:00:00Z"},
		})
	}))

	tracks, err := NewTrackService(backend).ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "row-2", tracks[0].ID)
	assert.Equal(t, "2026-08-31T11:00:00Z", tracks[0].CreatedAt)
}

func TestListByUser_QueryFailureDegradesToEmpty(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	tracks, err := NewTrackService(backend).ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestListByUser_Unconfigured(t *testing.T) {
	_, err := NewTrackService(supabase.NewClient(config.SupabaseConfig{})).
		ListByUser(context.Background(), "user-1")
	var notConfigured pkgError.NotConfiguredError
	require.ErrorAs(t, err, &notConfigured)
}

func TestDelete_RemovesRowAndBlob(t *testing.T) {
	var blobRemoved bool
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/rest/v1/user_tracks"):
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "eq.row-1", r.URL.Query().Get("id"))
			assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": "row-1", "storage_path": "user-1/blob.mp3"},
			})
		case strings.HasPrefix(r.URL.Path, "/storage/v1/object/music-tracks/user-1/blob.mp3"):
			assert.Equal(t, http.MethodDelete, r.Method)
			blobRemoved = true
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	deleted, err := NewTrackService(backend).Delete(context.Background(), "row-1", "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, blobRemoved)
}

func TestDelete_ForeignTrackLooksMissing(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The user_id filter matched nothing, PostgREST answers an empty set.
		w.Write([]byte("[]"))
	}))

	deleted, err := NewTrackService(backend).Delete(context.Background(), "row-1", "someone-else")
	require.NoError(t, err)
	assert.False(t, deleted)
}
