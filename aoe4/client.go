// Package aoe4 is a read-only client for the aoe4world stats API. The
// API is treated as unreliable: any failure is returned as an error and
// callers skip that player for the cycle.
package aoe4

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://aoe4world.com/api/v0"

// Client fetches player snapshots and recent games.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error: status %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Player fetches the current ranked snapshot for an in-game profile id.
func (c *Client) Player(ctx context.Context, ingameID string) (*Player, error) {
	var player Player
	endpoint := fmt.Sprintf("%s/players/%s.json", c.baseURL, url.PathEscape(ingameID))
	if err := c.get(ctx, endpoint, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// RecentGames fetches a player's games, most recent first.
func (c *Client) RecentGames(ctx context.Context, ingameID string) ([]Game, error) {
	var resp gamesResponse
	endpoint := fmt.Sprintf("%s/games?profile_ids=%s", c.baseURL, url.QueryEscape(ingameID))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Games, nil
}
