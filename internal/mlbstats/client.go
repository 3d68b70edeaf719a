// Package mlbstats provides a minimal client for the public MLB Stats API.
package mlbstats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pable/go-mlb-splits/internal/model"
)

// baseURL is the root endpoint for the Stats API. No authentication.
const baseURL = "https://statsapi.mlb.com/api/v1"

// Client is a minimal MLB Stats API client.
type Client struct {
	http *http.Client
}

// NewClient returns a Stats API client with a sane timeout.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 15 * time.Second}}
}

// person holds the fields we need from the people endpoints.
type person struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	CurrentAge    int    `json:"currentAge"`
	Height        string `json:"height"`
	Weight        int    `json:"weight"`
	PrimaryNumber string `json:"primaryNumber"`
	Active        bool   `json:"active"`
	BatSide       struct {
		Description string `json:"description"`
	} `json:"batSide"`
	PitchHand struct {
		Description string `json:"description"`
	} `json:"pitchHand"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
	CurrentTeam struct {
		Name string `json:"name"`
	} `json:"currentTeam"`
}

// get performs a GET request against the Stats API and JSON-decodes the
// response body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// People returns the bio for one player id.
func (c *Client) People(ctx context.Context, id int64) (*model.Player, error) {
	var resp struct {
		People []person `json:"people"`
	}
	path := fmt.Sprintf("/people?personIds=%d&hydrate=currentTeam", id)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.People) == 0 {
		return nil, fmt.Errorf("player %d not found", id)
	}
	p := resp.People[0]
	return &model.Player{
		ID:        p.ID,
		FullName:  p.FullName,
		Age:       p.CurrentAge,
		Height:    p.Height,
		Weight:    p.Weight,
		BatSide:   p.BatSide.Description,
		PitchHand: p.PitchHand.Description,
		Position:  p.PrimaryPosition.Abbreviation,
		Team:      p.CurrentTeam.Name,
		Number:    p.PrimaryNumber,
	}, nil
}

// Search looks up players by name and returns the candidate list.
func (c *Client) Search(ctx context.Context, name string) ([]model.PlayerRef, error) {
	var resp struct {
		People []person `json:"people"`
	}
	path := "/people/search?names=" + url.QueryEscape(name) + "&hydrate=currentTeam"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	refs := make([]model.PlayerRef, 0, len(resp.People))
	for _, p := range resp.People {
		refs = append(refs, model.PlayerRef{
			ID:       p.ID,
			FullName: p.FullName,
			Position: p.PrimaryPosition.Abbreviation,
			Team:     p.CurrentTeam.Name,
			Active:   p.Active,
		})
	}
	return refs, nil
}
