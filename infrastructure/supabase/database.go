package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TrackRow mirrors the user_tracks table.
type TrackRow struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Prompt      string    `json:"prompt"`
	Duration    int       `json:"duration"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// InsertTrack writes a metadata row and returns the stored representation
// (with the database-assigned id and timestamp).
func (c *Client) InsertTrack(ctx context.Context, accessToken string, row TrackRow) (TrackRow, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, c.table)

	var inserted []TrackRow
	if err := c.doJSONWithPrefer(ctx, http.MethodPost, endpoint, accessToken, row, &inserted); err != nil {
		return TrackRow{}, err
	}
	if len(inserted) == 0 {
		return row, nil
	}
	return inserted[0], nil
}

// ListTracks returns the caller's rows, newest first. Row-level security
// scopes the result to the token's user; the user_id filter is belt and
// braces for misconfigured projects.
func (c *Client) ListTracks(ctx context.Context, accessToken, userID string) ([]TrackRow, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?user_id=eq.%s&order=created_at.desc",
		c.baseURL, c.table, url.QueryEscape(userID))

	var rows []TrackRow
	if err := c.doJSON(ctx, http.MethodGet, endpoint, accessToken, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteTrack removes one row scoped to userID and returns it, or nil when
// no owned row matched.
func (c *Client) DeleteTrack(ctx context.Context, accessToken, trackID, userID string) (*TrackRow, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s&user_id=eq.%s",
		c.baseURL, c.table, url.QueryEscape(trackID), url.QueryEscape(userID))

	var deleted []TrackRow
	if err := c.doJSONWithPrefer(ctx, http.MethodDelete, endpoint, accessToken, nil, &deleted); err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	return &deleted[0], nil
}
