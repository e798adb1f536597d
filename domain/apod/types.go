package apod

import "context"

// Client defines the APOD API operations required by the domain layer
type Client interface {
	Today(ctx context.Context) (*Picture, error)
	ByDate(ctx context.Context, date string) (*Picture, error)
	DateRange(ctx context.Context, startDate, endDate string) ([]Picture, error)
}

// Picture is one Astronomy Picture of the Day entry as returned upstream.
type Picture struct {
	Date           string `json:"date"`
	Title          string `json:"title"`
	Explanation    string `json:"explanation"`
	URL            string `json:"url"`
	HDURL          string `json:"hdurl,omitempty"`
	MediaType      string `json:"media_type"`
	ServiceVersion string `json:"service_version,omitempty"`
	Copyright      string `json:"copyright,omitempty"`
}

// RangeData is the normalized payload of a date-range lookup. Entries is
// always a list, even when upstream collapses a single-day range to one
// object.
type RangeData struct {
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Count     int       `json:"count"`
	Entries   []Picture `json:"entries"`
}
