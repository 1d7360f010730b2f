package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultEndpoint = "https://api.line.me"

// Client sends reply messages to the Messaging API. Reply tokens are
// single use and expire quickly, so a failed reply is never retried.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a reply client with a conservative timeout so a
// slow platform call cannot hold the webhook response open long enough
// to trigger platform-side retries.
func NewClient(timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NewClientWithEndpoint creates a reply client against a custom
// endpoint. Used by tests to point at a local server.
func NewClientWithEndpoint(endpoint string, timeout time.Duration, logger zerolog.Logger) *Client {
	c := NewClient(timeout, logger)
	c.endpoint = endpoint
	return c
}

type replyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []Message `json:"messages"`
}

// Reply sends up to five messages in answer to the event that carried
// replyToken, authorized by the tenant's channel access token.
func (c *Client) Reply(ctx context.Context, accessToken, replyToken string, messages []Message) error {
	if replyToken == "" {
		return fmt.Errorf("reply token is empty")
	}
	if accessToken == "" {
		return fmt.Errorf("access token is empty")
	}
	if len(messages) == 0 {
		return nil
	}
	if len(messages) > 5 {
		messages = messages[:5]
	}

	payload, err := json.Marshal(replyRequest{ReplyToken: replyToken, Messages: messages})
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/bot/message/reply", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("response", string(body)).
			Msg("Reply API returned non-OK status")
		return fmt.Errorf("reply API returned status %d", resp.StatusCode)
	}

	return nil
}
