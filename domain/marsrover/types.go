package marsrover

import (
	"context"
	"math"
	"strings"
	"time"
)

// Client defines the Mars Rover Photos API operations required by the
// domain layer. An empty camera means no camera filter.
type Client interface {
	RoverInfo(ctx context.Context, rover string) (*Rover, error)
	LatestPhotos(ctx context.Context, rover string, count int) ([]Photo, error)
	PhotosByEarthDate(ctx context.Context, rover, earthDate, camera string) ([]Photo, error)
	PhotosBySol(ctx context.Context, rover string, sol int, camera string) ([]Photo, error)
}

// Rover is the upstream rover manifest record.
type Rover struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LandingDate string `json:"landing_date"`
	LaunchDate  string `json:"launch_date"`
	Status      string `json:"status"`
	MaxSol      int    `json:"max_sol"`
	MaxDate     string `json:"max_date"`
	TotalPhotos int    `json:"total_photos"`
}

// Photo is one rover photo record. Immutable snapshot of upstream data.
type Photo struct {
	ID        int      `json:"id"`
	Sol       int      `json:"sol"`
	EarthDate string   `json:"earth_date"`
	Camera    Camera   `json:"camera"`
	ImgSrc    string   `json:"img_src"`
	Rover     RoverRef `json:"rover"`
}

// Camera identifies the instrument that took a photo.
type Camera struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RoverID  int    `json:"rover_id"`
	FullName string `json:"full_name"`
}

// RoverRef is the owning-rover slice embedded in each photo.
type RoverRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LandingDate string `json:"landing_date"`
	LaunchDate  string `json:"launch_date"`
	Status      string `json:"status"`
}

// MissionSpec holds the static facts for one rover mission.
type MissionSpec struct {
	Name        string
	LaunchDate  string
	LandingDate string
	Status      string
	MaxSol      int
	Cameras     []string
}

// RoverNames is the enumerated rover set, in catalog order.
var RoverNames = []string{"curiosity", "opportunity", "spirit"}

// Missions maps rover name to its static mission facts. MaxSol values are
// approximate and only bound sol validation; the live manifest is
// authoritative for everything reported to callers.
var Missions = map[string]MissionSpec{
	"curiosity": {
		Name:        "Curiosity",
		LaunchDate:  "2011-11-26",
		LandingDate: "2012-08-06",
		Status:      "active",
		MaxSol:      4000,
		Cameras:     []string{"FHAZ", "RHAZ", "MAST", "CHEMCAM", "MAHLI", "MARDI", "NAVCAM"},
	},
	"opportunity": {
		Name:        "Opportunity",
		LaunchDate:  "2003-07-07",
		LandingDate: "2004-01-25",
		Status:      "complete",
		MaxSol:      5111,
		Cameras:     []string{"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	},
	"spirit": {
		Name:        "Spirit",
		LaunchDate:  "2003-06-10",
		LandingDate: "2004-01-04",
		Status:      "complete",
		MaxSol:      2208,
		Cameras:     []string{"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	},
}

// HasCamera reports whether the mission carries the named camera.
func (m MissionSpec) HasCamera(camera string) bool {
	camera = strings.ToUpper(camera)
	for _, c := range m.Cameras {
		if c == camera {
			return true
		}
	}
	return false
}

// MissionDuration computes the mission length in days: to now for active
// missions, to the last recorded date otherwise. An unparseable or missing
// max date falls back to the landing date (duration 0).
func MissionDuration(status, landingDate, maxDate string, now time.Time) int {
	landing, err := time.Parse("2006-01-02", landingDate)
	if err != nil {
		return 0
	}

	end := now
	if status != "active" {
		end = landing
		if maxDate != "" {
			if parsed, err := time.Parse("2006-01-02", maxDate); err == nil {
				end = parsed
			}
		}
	}

	days := int(end.Sub(landing).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DurationYears converts mission days to years with one decimal.
func DurationYears(days int) float64 {
	return math.Round(float64(days)/365.25*10) / 10
}
