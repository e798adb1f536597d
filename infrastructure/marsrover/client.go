package marsrover

import (
	"context"
	"strconv"

	domain "nasa-server/services/space-tools/domain/marsrover"
	"nasa-server/services/space-tools/infrastructure/nasaapi"
)

const roversPath = "/mars-photos/api/v1/rovers/"

// Client implements the Mars Rover Photos API client over the shared NASA
// caller.
type Client struct {
	caller *nasaapi.Caller
}

var _ domain.Client = (*Client)(nil)

// NewClient creates a new Mars Rover Photos API client.
func NewClient(caller *nasaapi.Caller) *Client {
	return &Client{caller: caller}
}

type roverInfoResponse struct {
	Rover domain.Rover `json:"rover"`
}

type latestPhotosResponse struct {
	LatestPhotos []domain.Photo `json:"latest_photos"`
}

type photosResponse struct {
	Photos []domain.Photo `json:"photos"`
}

// RoverInfo fetches the mission manifest for one rover.
func (c *Client) RoverInfo(ctx context.Context, rover string) (*domain.Rover, error) {
	var resp roverInfoResponse
	if err := c.caller.GetJSON(ctx, roversPath+rover, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Rover, nil
}

// LatestPhotos fetches the newest photos for a rover, truncated to count.
func (c *Client) LatestPhotos(ctx context.Context, rover string, count int) ([]domain.Photo, error) {
	params := map[string]string{"page": "1"}
	var resp latestPhotosResponse
	if err := c.caller.GetJSON(ctx, roversPath+rover+"/latest_photos", params, &resp); err != nil {
		return nil, err
	}
	photos := resp.LatestPhotos
	if count > 0 && len(photos) > count {
		photos = photos[:count]
	}
	return photos, nil
}

// PhotosByEarthDate fetches photos taken on one Earth date, optionally
// filtered by camera upstream.
func (c *Client) PhotosByEarthDate(ctx context.Context, rover, earthDate, camera string) ([]domain.Photo, error) {
	params := map[string]string{
		"earth_date": earthDate,
		"page":       "1",
	}
	if camera != "" {
		params["camera"] = camera
	}
	var resp photosResponse
	if err := c.caller.GetJSON(ctx, roversPath+rover+"/photos", params, &resp); err != nil {
		return nil, err
	}
	return resp.Photos, nil
}

// PhotosBySol fetches photos taken on one Martian sol, optionally filtered
// by camera upstream.
func (c *Client) PhotosBySol(ctx context.Context, rover string, sol int, camera string) ([]domain.Photo, error) {
	params := map[string]string{
		"sol":  strconv.Itoa(sol),
		"page": "1",
	}
	if camera != "" {
		params["camera"] = camera
	}
	var resp photosResponse
	if err := c.caller.GetJSON(ctx, roversPath+rover+"/photos", params, &resp); err != nil {
		return nil, err
	}
	return resp.Photos, nil
}
