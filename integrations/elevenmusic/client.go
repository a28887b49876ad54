// Package elevenmusic wraps the ElevenLabs Music API. It builds the request
// payload, bounds the call with a timeout and classifies provider error
// responses into the typed errors of pkg/error. No retries happen here;
// callers decide.
package elevenmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mraff116/vugru-music-mvp/config"
	pkgError "github.com/mraff116/vugru-music-mvp/pkg/error"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultModelID = "music_v1"

	minDurationSeconds = 10
	maxDurationSeconds = 60

	defaultTimeout = 120 * time.Second

	// One observed price point (788 credits for 35 seconds). Heuristic, not
	// an authoritative quote from the provider.
	defaultCreditsPerSecond = 22.5
)

var httpClient = &http.Client{Timeout: defaultTimeout}

var creditsPattern = regexp.MustCompile(`You have (\d+) credits remaining, while (\d+) credits are required`)

type Client struct {
	apiKey           string
	baseURL          string
	modelID          string
	creditsPerSecond float64

	// client overrides the shared httpClient when a custom timeout was
	// configured, so two clients never affect each other's timeouts.
	client *http.Client
}

func NewClient(cfg config.ElevenLabsConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = defaultModelID
	}
	creditsPerSecond := cfg.CreditsPerSecond
	if creditsPerSecond <= 0 {
		creditsPerSecond = defaultCreditsPerSecond
	}
	client := &Client{
		apiKey:           cfg.APIKey,
		baseURL:          baseURL,
		modelID:          modelID,
		creditsPerSecond: creditsPerSecond,
	}
	if cfg.Timeout > 0 && cfg.Timeout != defaultTimeout {
		client.client = &http.Client{Timeout: cfg.Timeout}
	}
	return client
}

func (c *Client) httpDo(req *http.Request) (*http.Response, error) {
	if c.client != nil {
		return c.client.Do(req)
	}
	return httpClient.Do(req)
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type generatePayload struct {
	Prompt        string `json:"prompt"`
	MusicLengthMs int    `json:"music_length_ms"`
	ModelID       string `json:"model_id"`
}

// Generate requests a track for prompt with the given length. The duration
// range is checked locally so an invalid request never reaches the provider.
func (c *Client) Generate(ctx context.Context, prompt string, durationSeconds int) ([]byte, error) {
	if durationSeconds < minDurationSeconds || durationSeconds > maxDurationSeconds {
		return nil, pkgError.ValidationError("duration must be between 10 and 60 seconds")
	}
	if !c.IsConfigured() {
		return nil, pkgError.NotConfiguredError("music generation service is not configured")
	}

	payload, err := json.Marshal(generatePayload{
		Prompt:        prompt,
		MusicLengthMs: durationSeconds * 1000,
		ModelID:       c.modelID,
	})
	if err != nil {
		return nil, pkgError.UpstreamError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/music", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgError.UpstreamError(err.Error())
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo(req)
	if err != nil {
		if isTimeout(err) {
			logrus.Error("[ELEVENLABS] music generation request timed out")
			return nil, pkgError.TimeoutError("music generation timed out, please try again with a shorter duration")
		}
		logrus.WithError(err).Error("[ELEVENLABS] request failed")
		return nil, pkgError.UpstreamError("failed to connect to music generation service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, pkgError.RateLimitError("rate limit reached, please try again in a minute")
	case resp.StatusCode == http.StatusUnauthorized:
		raw, _ := io.ReadAll(resp.Body)
		if bytes.Contains(raw, []byte("quota_exceeded")) {
			return nil, c.quotaError(raw, durationSeconds)
		}
		logrus.Errorf("[ELEVENLABS] authentication error: %s", string(raw))
		return nil, pkgError.UnauthenticatedError("music provider rejected the API key")
	case resp.StatusCode != http.StatusOK:
		raw, _ := io.ReadAll(resp.Body)
		logrus.Errorf("[ELEVENLABS] API error: %d - %s", resp.StatusCode, string(raw))
		return nil, pkgError.UpstreamError("failed to generate music, please try again")
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgError.UpstreamError("failed to read generated audio")
	}
	return audio, nil
}

// quotaError builds a 402-mapped error, suggesting the longest duration the
// remaining credits can still afford.
func (c *Client) quotaError(raw []byte, requestedSeconds int) error {
	var body struct {
		Detail struct {
			Message string `json:"message"`
		} `json:"detail"`
	}
	_ = json.Unmarshal(raw, &body)

	message := body.Detail.Message
	if message == "" {
		message = string(raw)
	}
	logrus.Errorf("[ELEVENLABS] quota exceeded: %s", message)

	match := creditsPattern.FindStringSubmatch(message)
	if match == nil {
		return pkgError.QuotaExceededError("not enough credits for this request, try a shorter duration (20 seconds or less)")
	}

	remaining, _ := strconv.Atoi(match[1])
	required, _ := strconv.Atoi(match[2])
	maxAffordable := int(float64(remaining) / c.creditsPerSecond)

	return pkgError.QuotaExceededError(fmt.Sprintf(
		"not enough credits: you have %d credits but need %d for %d seconds, try a shorter duration (max ~%d seconds)",
		remaining, required, requestedSeconds, maxAffordable,
	))
}

// Subscription fetches the provider subscription, including remaining
// credits.
func (c *Client) Subscription(ctx context.Context) (map[string]any, error) {
	if !c.IsConfigured() {
		return nil, pkgError.NotConfiguredError("music generation service is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/subscription", nil)
	if err != nil {
		return nil, pkgError.UpstreamError(err.Error())
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpDo(req)
	if err != nil {
		if isTimeout(err) {
			return nil, pkgError.TimeoutError("subscription lookup timed out")
		}
		return nil, pkgError.UpstreamError("failed to connect to music generation service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.Warnf("[ELEVENLABS] failed to fetch subscription: %d", resp.StatusCode)
		return nil, pkgError.UpstreamError("unable to fetch credit information")
	}

	var info map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, pkgError.UpstreamError("unable to decode credit information")
	}
	return info, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
