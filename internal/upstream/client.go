package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var ErrInvalidJSON = errors.New("response body is not valid json")

// Client pings a single upstream endpoint and hands back its JSON body untouched.
type Client struct {
	logs *zap.SugaredLogger
	doer Doer
	url  string
}

func NewClient(logger *zap.SugaredLogger, doer Doer, url string) *Client {
	return &Client{
		logs: logger,
		doer: doer,
		url:  url,
	}
}

// Ping issues a bare GET and returns the raw body once it is known to be a
// single JSON document. The status code is not checked.
func (c *Client) Ping(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logs.Warnw("upstream answered with a non-2xx status",
			"url", c.url,
			"status", resp.StatusCode)
	}

	// invalid utf-8 inside strings would otherwise pass through to the envelope
	body = bytes.ToValidUTF8(body, []byte("\uFFFD"))

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: status %d, %d bytes", ErrInvalidJSON, resp.StatusCode, len(body))
	}

	c.logs.Debugw("upstream pinged",
		"url", c.url,
		"status", resp.StatusCode,
		"bytes", len(body))

	return json.RawMessage(body), nil
}
