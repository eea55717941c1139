// Package speech provides text-to-speech synthesis for card pronunciation
// audio via the ElevenLabs HTTP API.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.elevenlabs.io/v1"
	defaultVoiceID = "zTGs6vubfUHrD7hJ5Btq"
	defaultModelID = "eleven_turbo_v2_5"
)

// Synthesizer converts card content into pronunciation audio.
type Synthesizer interface {
	// Synthesize returns MP3 audio bytes for the given text.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Client is an ElevenLabs-backed Synthesizer.
type Client struct {
	apiKey     string
	apiBase    string
	voiceID    string
	httpClient *http.Client
}

var _ Synthesizer = (*Client)(nil)

// NewClient creates an ElevenLabs speech client. An empty voiceID selects
// the default Spanish voice.
func NewClient(apiKey, voiceID string) *Client {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &Client{
		apiKey:     apiKey,
		apiBase:    defaultAPIBase,
		voiceID:    voiceID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Synthesize generates MP3 audio for the text. A trailing SSML break gives
// cleaner pronunciation for single letters and syllables.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("speech API key not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	requestBody := map[string]interface{}{
		"text":          fmt.Sprintf("%q <break time=\"0.5s\" />", text),
		"model_id":      defaultModelID,
		"language_code": "es",
		"voice_settings": map[string]interface{}{
			"stability": 0.9,
			"speed":     0.8,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=mp3_44100_128", c.apiBase, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech API request failed: status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
