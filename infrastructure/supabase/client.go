// Package supabase is a thin REST client for the three Supabase surfaces the
// application uses: GoTrue (auth), Storage (audio blobs) and PostgREST (track
// metadata rows). Callers forward the end user's bearer token so row-level
// security decides visibility; this package holds no privileged key.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mraff116/vugru-music-mvp/config"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/sirupsen/logrus"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type Client struct {
	baseURL string
	anonKey string
	bucket  string
	table   string
	urlTTL  time.Duration
}

func NewClient(cfg config.SupabaseConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		anonKey: cfg.AnonKey,
		bucket:  cfg.StorageBucket,
		table:   cfg.TracksTable,
		urlTTL:  cfg.SignedURLTTL,
	}
}

func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.anonKey != ""
}

// authHeaders sets the project key plus the acting identity. An empty token
// downgrades to the anon role.
func (c *Client) authHeaders(req *http.Request, accessToken string) {
	if accessToken == "" {
		accessToken = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
}

// doJSON performs a JSON request and decodes the response body into out (when
// out is non-nil). Non-2xx responses are returned as APIError.
func (c *Client) doJSON(ctx context.Context, method, url, accessToken string, body any, out any) error {
	return c.do(ctx, method, url, accessToken, body, out, nil)
}

// doJSONWithPrefer is doJSON with "Prefer: return=representation", making
// PostgREST echo affected rows back.
func (c *Client) doJSONWithPrefer(ctx context.Context, method, url, accessToken string, body any, out any) error {
	return c.do(ctx, method, url, accessToken, body, out, map[string]string{
		"Prefer": "return=representation",
	})
}

func (c *Client) do(ctx context.Context, method, url, accessToken string, body, out any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgError.UpstreamError(err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return pkgError.UpstreamError(err.Error())
	}
	c.authHeaders(req, accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Errorf("[SUPABASE] %s %s failed", method, url)
		return pkgError.UpstreamError("failed to reach the backend service")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgError.UpstreamError("failed to read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return pkgError.UpstreamError("failed to decode backend response")
		}
	}
	return nil
}

// APIError preserves the upstream status so callers can tell auth rejections
// apart from outages.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Body)
}

// Message digs the human-readable explanation out of the error body. GoTrue
// and PostgREST disagree on the field name.
func (e *APIError) Message() string {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err == nil {
		for _, candidate := range []string{body.Msg, body.ErrorDescription, body.Message} {
			if candidate != "" {
				return candidate
			}
		}
	}
	return "request rejected by the backend service"
}
