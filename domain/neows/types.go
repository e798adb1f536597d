package neows

import (
	"context"
	"sort"
	"strconv"
)

// Client defines the NeoWs API operations required by the domain layer
type Client interface {
	Feed(ctx context.Context, startDate, endDate string) (*Feed, error)
	Lookup(ctx context.Context, asteroidID string) (*Asteroid, error)
}

// Feed is the NeoWs feed response: asteroids grouped by close-approach date.
type Feed struct {
	ElementCount     int                   `json:"element_count"`
	NearEarthObjects map[string][]Asteroid `json:"near_earth_objects"`
}

// Asteroid is one near-Earth object record as returned upstream.
type Asteroid struct {
	ID                     string            `json:"id"`
	NeoReferenceID         string            `json:"neo_reference_id"`
	Name                   string            `json:"name"`
	NasaJplURL             string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH     float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter      EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach   `json:"close_approach_data"`
	IsSentryObject         bool              `json:"is_sentry_object"`
}

// EstimatedDiameter carries the upstream diameter estimates. Only the
// kilometer range participates in derived computations.
type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
	Meters     DiameterRange `json:"meters"`
}

// DiameterRange is a min/max diameter estimate in one unit.
type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one close-approach event. Distances and velocities are
// decimal strings upstream.
type CloseApproach struct {
	Date             string           `json:"close_approach_date"`
	DateFull         string           `json:"close_approach_date_full"`
	EpochDate        int64            `json:"epoch_date_close_approach"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
	MissDistance     MissDistance     `json:"miss_distance"`
	OrbitingBody     string           `json:"orbiting_body"`
}

// RelativeVelocity in upstream string form.
type RelativeVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
	KilometersPerHour   string `json:"kilometers_per_hour"`
	MilesPerHour        string `json:"miles_per_hour"`
}

// MissDistance in upstream string form.
type MissDistance struct {
	Astronomical string `json:"astronomical"`
	Lunar        string `json:"lunar"`
	Kilometers   string `json:"kilometers"`
	Miles        string `json:"miles"`
}

// Asteroids flattens the feed into one list, dates in ascending order so
// repeated calls on identical upstream data yield identical ordering.
func (f *Feed) Asteroids() []Asteroid {
	dates := make([]string, 0, len(f.NearEarthObjects))
	for date := range f.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var all []Asteroid
	for _, date := range dates {
		all = append(all, f.NearEarthObjects[date]...)
	}
	return all
}

// Hazardous returns only asteroids flagged potentially hazardous upstream.
func (f *Feed) Hazardous() []Asteroid {
	var out []Asteroid
	for _, ast := range f.Asteroids() {
		if ast.IsPotentiallyHazardous {
			out = append(out, ast)
		}
	}
	return out
}

// MaxDiameterKm returns the upper bound of the kilometer diameter estimate.
func (a *Asteroid) MaxDiameterKm() float64 {
	return a.EstimatedDiameter.Kilometers.Max
}

// ClosestApproach returns the approach event with minimum miss distance, or
// nil when upstream listed none.
func (a *Asteroid) ClosestApproach() *CloseApproach {
	var closest *CloseApproach
	for i := range a.CloseApproachData {
		approach := &a.CloseApproachData[i]
		if closest == nil || approach.DistanceKm() < closest.DistanceKm() {
			closest = approach
		}
	}
	return closest
}

// DistanceKm parses the miss distance in kilometers, 0 on malformed input.
func (c *CloseApproach) DistanceKm() float64 {
	return parseFloat(c.MissDistance.Kilometers)
}

// DistanceLunar parses the miss distance in lunar distances.
func (c *CloseApproach) DistanceLunar() float64 {
	return parseFloat(c.MissDistance.Lunar)
}

// VelocityKmh parses the relative velocity in km/h.
func (c *CloseApproach) VelocityKmh() float64 {
	return parseFloat(c.RelativeVelocity.KilometersPerHour)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
