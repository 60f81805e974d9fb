// Package asana reads the user's out-of-office state. The API offers no way to set it.
package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/julianstephens/st/internal/constants"
	"github.com/julianstephens/st/internal/errors"
)

const DefaultBaseURL = "https://app.asana.com/api/1.0"

// ErrNoUser is returned when no tracker user id is configured.
var ErrNoUser = errors.New("asana_user_gid not set in config")

// TokenFunc supplies the API token on demand.
type TokenFunc func() (string, error)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserGID    string
	token      TokenFunc
}

type vacationDates struct {
	StartOn string `json:"start_on"`
	EndOn   string `json:"end_on"`
}

type membershipsResponse struct {
	Data []struct {
		VacationDates *vacationDates `json:"vacation_dates"`
	} `json:"data"`
}

func New(token TokenFunc, userGID string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: constants.HTTPTimeout},
		UserGID:    userGID,
		token:      token,
	}
}

// IsOutOfOffice reports whether any workspace membership has vacation dates set.
func (c *Client) IsOutOfOffice(ctx context.Context) (bool, error) {
	token, err := c.token()
	if err != nil {
		return false, err
	}
	if c.UserGID == "" {
		return false, ErrNoUser
	}

	u := fmt.Sprintf("%s/users/%s/workspace_memberships?opt_fields=vacation_dates", c.BaseURL, url.PathEscape(c.UserGID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return false, err
	}
	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("Asana request failed with status %d: %s: %w", res.StatusCode, string(data), errors.ErrService)
	}

	var out membershipsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("Asana: decoding response: %w", err)
	}
	for _, m := range out.Data {
		if m.VacationDates != nil {
			return true, nil
		}
	}
	return false, nil
}
