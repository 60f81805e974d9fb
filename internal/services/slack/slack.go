// Package slack sets the chat profile status and do-not-disturb snooze.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
)

const (
	DefaultBaseURL = "https://slack.com/api"

	// errSnoozeNotActive is returned by dnd.endSnooze when DND is already off
	errSnoozeNotActive = "snooze_not_active"
)

// TokenFunc supplies the API token on demand.
type TokenFunc func() (string, error)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      TokenFunc
}

type profile struct {
	StatusText       string `json:"status_text"`
	StatusEmoji      string `json:"status_emoji"`
	StatusExpiration int64  `json:"status_expiration"`
}

type response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func New(token TokenFunc) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: constants.HTTPTimeout},
		token:      token,
	}
}

// SetProfile sets the status text and emoji. expiresAt is a unix timestamp,
// zero for no expiration.
func (c *Client) SetProfile(ctx context.Context, text, emoji string, expiresAt int64) error {
	body, err := json.Marshal(map[string]profile{
		"profile": {StatusText: text, StatusEmoji: emoji, StatusExpiration: expiresAt},
	})
	if err != nil {
		return err
	}
	resp, err := c.post(ctx, "users.profile.set", "application/json; charset=utf-8", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return check("users.profile.set", resp, "")
}

// ClearProfile removes the status text, emoji and expiration.
func (c *Client) ClearProfile(ctx context.Context) error {
	return c.SetProfile(ctx, "", "", 0)
}

// SetSnooze turns on do-not-disturb for the given number of minutes.
func (c *Client) SetSnooze(ctx context.Context, minutes int64) error {
	form := url.Values{"num_minutes": {strconv.FormatInt(minutes, 10)}}
	resp, err := c.post(ctx, "dnd.setSnooze", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	return check("dnd.setSnooze", resp, "")
}

// EndSnooze turns off do-not-disturb. Ending an inactive snooze is not an error.
func (c *Client) EndSnooze(ctx context.Context) error {
	resp, err := c.post(ctx, "dnd.endSnooze", "application/x-www-form-urlencoded", strings.NewReader(""))
	if err != nil {
		return err
	}
	return check("dnd.endSnooze", resp, errSnoozeNotActive)
}

func check(method string, resp response, tolerated string) error {
	if resp.OK || (tolerated != "" && resp.Error == tolerated) {
		return nil
	}
	return fmt.Errorf("Slack %s: %s: %w", method, resp.Error, errors.ErrService)
}

func (c *Client) post(ctx context.Context, method, contentType string, body io.Reader) (response, error) {
	token, err := c.token()
	if err != nil {
		return response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+method, body)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return response{}, err
	}
	if res.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("Slack %s failed with status %d: %s: %w", method, res.StatusCode, string(data), errors.ErrService)
	}

	var out response
	if err := json.Unmarshal(data, &out); err != nil {
		return response{}, fmt.Errorf("Slack %s: decoding response: %w", method, err)
	}
	return out, nil
}
