package neows

import (
	"context"

	domain "nasa-server/services/space-tools/domain/neows"
	"nasa-server/services/space-tools/infrastructure/nasaapi"
)

const (
	feedPath   = "/neo/rest/v1/feed"
	lookupPath = "/neo/rest/v1/neo/"
)

// Client implements the NeoWs API client over the shared NASA caller.
type Client struct {
	caller *nasaapi.Caller
}

var _ domain.Client = (*Client)(nil)

// NewClient creates a new NeoWs API client.
func NewClient(caller *nasaapi.Caller) *Client {
	return &Client{caller: caller}
}

// Feed fetches the asteroid feed for a date range.
func (c *Client) Feed(ctx context.Context, startDate, endDate string) (*domain.Feed, error) {
	params := map[string]string{
		"start_date": startDate,
		"end_date":   endDate,
		"detailed":   "true",
	}
	var feed domain.Feed
	if err := c.caller.GetJSON(ctx, feedPath, params, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Lookup fetches one asteroid by its NASA id.
func (c *Client) Lookup(ctx context.Context, asteroidID string) (*domain.Asteroid, error) {
	var asteroid domain.Asteroid
	if err := c.caller.GetJSON(ctx, lookupPath+asteroidID, nil, &asteroid); err != nil {
		return nil, err
	}
	return &asteroid, nil
}
