package apod

import (
	"context"
	"encoding/json"
	"fmt"

	domain "nasa-server/services/space-tools/domain/apod"
	"nasa-server/services/space-tools/infrastructure/nasaapi"
)

const apodPath = "/planetary/apod"

// Client implements the APOD API client over the shared NASA caller.
type Client struct {
	caller *nasaapi.Caller
}

var _ domain.Client = (*Client)(nil)

// NewClient creates a new APOD API client.
func NewClient(caller *nasaapi.Caller) *Client {
	return &Client{caller: caller}
}

// Today fetches the current Astronomy Picture of the Day.
func (c *Client) Today(ctx context.Context) (*domain.Picture, error) {
	var picture domain.Picture
	if err := c.caller.GetJSON(ctx, apodPath, nil, &picture); err != nil {
		return nil, err
	}
	return &picture, nil
}

// ByDate fetches the picture for one date.
func (c *Client) ByDate(ctx context.Context, date string) (*domain.Picture, error) {
	var picture domain.Picture
	params := map[string]string{"date": date}
	if err := c.caller.GetJSON(ctx, apodPath, params, &picture); err != nil {
		return nil, err
	}
	return &picture, nil
}

// DateRange fetches pictures for a date range. Upstream returns an array
// for ranges but collapses to a single object for some single-day windows;
// both shapes normalize to a list here.
func (c *Client) DateRange(ctx context.Context, startDate, endDate string) ([]domain.Picture, error) {
	params := map[string]string{
		"start_date": startDate,
		"end_date":   endDate,
	}
	body, err := c.caller.GetRaw(ctx, apodPath, params)
	if err != nil {
		return nil, err
	}

	var pictures []domain.Picture
	if err := json.Unmarshal(body, &pictures); err == nil {
		return pictures, nil
	}

	var single domain.Picture
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("malformed APOD range payload: %w", err)
	}
	return []domain.Picture{single}, nil
}
