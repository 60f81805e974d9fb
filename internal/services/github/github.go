// Package github sets and clears the user's profile status through the GraphQL API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
)

const (
	DefaultEndpoint = "https://api.github.com/graphql"
	userAgent       = "st-cli"

	changeStatusMutation = `mutation($input: ChangeUserStatusInput!) { changeUserStatus(input: $input) { status { message } } }`
	clearStatusMutation  = `mutation { changeUserStatus(input: {}) { clientMutationId } }`
)

// TokenFunc supplies the API token on demand.
type TokenFunc func() (string, error)

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	token      TokenFunc
}

type statusInput struct {
	Message             string `json:"message"`
	Emoji               string `json:"emoji"`
	LimitedAvailability bool   `json:"limitedAvailability"`
	ExpiresAt           string `json:"expiresAt,omitempty"`
	OrganizationID      string `json:"organizationId,omitempty"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func New(token TokenFunc) *Client {
	return &Client{
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: constants.HTTPTimeout},
		token:      token,
	}
}

// SetLimitedAvailability marks the user busy. expiresAt is an ISO 8601 UTC
// timestamp or empty; scope is an organization node id or empty.
func (c *Client) SetLimitedAvailability(ctx context.Context, message, emoji, expiresAt, scope string) error {
	return c.do(ctx, graphqlRequest{
		Query: changeStatusMutation,
		Variables: map[string]any{"input": statusInput{
			Message:             message,
			Emoji:               emoji,
			LimitedAvailability: true,
			ExpiresAt:           expiresAt,
			OrganizationID:      scope,
		}},
	})
}

// ClearStatus removes the status entirely, including limited availability.
func (c *Client) ClearStatus(ctx context.Context) error {
	return c.do(ctx, graphqlRequest{Query: clearStatusMutation})
}

func (c *Client) do(ctx context.Context, body graphqlRequest) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub request failed with status %d: %s: %w", res.StatusCode, string(data), errors.ErrService)
	}

	var out graphqlResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("GitHub: decoding response: %w", err)
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("GraphQL error: %v: %w", msgs, errors.ErrService)
	}
	return nil
}
