package supabase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/sirupsen/logrus"
)

// UploadObject stores a blob at path inside the configured bucket.
func (c *Client) UploadObject(ctx context.Context, path, contentType string, data []byte) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return pkgError.UpstreamError(err.Error())
	}
	c.authHeaders(req, "")
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("[SUPABASE] storage upload failed")
		return pkgError.UpstreamError("failed to upload audio to storage")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	return nil
}

// SignObjectURL mints a time-limited download URL for path. When signing
// fails the public object URL is returned instead, which works for public
// buckets and degrades to a dead link otherwise.
func (c *Client) SignObjectURL(ctx context.Context, path string) string {
	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, c.bucket, path)
	body := map[string]any{"expiresIn": int(c.urlTTL.Seconds())}
	if err := c.doJSON(ctx, http.MethodPost, url, "", body, &signed); err != nil || signed.SignedURL == "" {
		logrus.WithError(err).Warn("[SUPABASE] could not sign object URL, falling back to public URL")
		return publicURL
	}
	return c.baseURL + "/storage/v1" + signed.SignedURL
}

// RemoveObject deletes a blob. Missing objects are not an error.
func (c *Client) RemoveObject(ctx context.Context, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	err := c.doJSON(ctx, http.MethodDelete, url, "", nil, nil)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}
