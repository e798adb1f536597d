package marsrover

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"nasa-server/services/space-tools/domain/tool"
)

const (
	sourceID = "marsrover"

	defaultLatestCount = 25
	maxLatestCount     = 100

	defaultCameraCount = 20
	maxCameraCount     = 50

	// The latest_photos endpoint has no camera parameter, so get_by_camera
	// oversamples the newest photos and filters client-side.
	cameraOversample = 100
)

type operation struct {
	descriptor tool.Descriptor
	run        func(ctx context.Context, args tool.Args) tool.Envelope
}

// Adapter exposes NASA's Mars Rover Photos API as tool operations.
type Adapter struct {
	client Client
	now    func() time.Time
	ops    []operation
	byName map[string]*operation
}

var _ tool.Adapter = (*Adapter)(nil)

// NewAdapter creates the Mars rover adapter.
func NewAdapter(client Client) *Adapter {
	a := &Adapter{
		client: client,
		now:    time.Now,
	}

	roverProperty := tool.Property{
		Type:        "string",
		Description: "Rover name: curiosity, opportunity, or spirit",
		Enum:        RoverNames,
	}

	a.ops = []operation{
		{
			descriptor: tool.Descriptor{
				Name:        "get_status",
				Description: "Get rover information and mission status",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"rover": roverProperty,
				}, "rover"),
			},
			run: a.getStatus,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_latest",
				Description: "Get the most recent photos from a rover",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"rover": roverProperty,
					"count": {
						Type:        "integer",
						Description: "Number of photos to return (1-100)",
						Minimum:     tool.Float(1),
						Maximum:     tool.Float(maxLatestCount),
						Default:     defaultLatestCount,
					},
				}, "rover"),
			},
			run: a.getLatest,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_by_earth_date",
				Description: "Get photos taken on a specific Earth date",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"rover": roverProperty,
					"earth_date": {
						Type:        "string",
						Description: "Earth date in YYYY-MM-DD format",
						Pattern:     `^\d{4}-\d{2}-\d{2}$`,
					},
					"camera": {
						Type:        "string",
						Description: "Optional camera filter (FHAZ, RHAZ, MAST, NAVCAM, etc.)",
					},
				}, "rover", "earth_date"),
			},
			run: a.getByEarthDate,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_by_sol",
				Description: "Get photos taken on a specific Martian sol (day)",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"rover": roverProperty,
					"sol": {
						Type:        "integer",
						Description: "Martian sol (day) number",
						Minimum:     tool.Float(0),
					},
					"camera": {
						Type:        "string",
						Description: "Optional camera filter",
					},
				}, "rover", "sol"),
			},
			run: a.getBySol,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_by_camera",
				Description: "Get recent photos from a specific camera",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"rover": roverProperty,
					"camera": {
						Type:        "string",
						Description: "Camera name (FHAZ, RHAZ, MAST, NAVCAM, etc.)",
					},
					"count": {
						Type:        "integer",
						Description: "Number of photos to return (1-50)",
						Minimum:     tool.Float(1),
						Maximum:     tool.Float(maxCameraCount),
						Default:     defaultCameraCount,
					},
				}, "rover", "camera"),
			},
			run: a.getByCamera,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "compare_all",
				Description: "Compare mission stats across all rovers",
				Parameters:  tool.ObjectSchema(map[string]tool.Property{}),
			},
			run: a.compareAll,
		},
	}

	a.byName = make(map[string]*operation, len(a.ops))
	for i := range a.ops {
		a.byName[a.ops[i].descriptor.Name] = &a.ops[i]
	}

	return a
}

// Source returns the registry namespace for this adapter.
func (a *Adapter) Source() string {
	return sourceID
}

// Description summarizes the adapter for status reporting.
func (a *Adapter) Description() string {
	return "Access NASA Mars Rover photos and mission data from Curiosity, Opportunity, and Spirit"
}

// Operations returns the static operation catalog in declaration order.
func (a *Adapter) Operations() []tool.Descriptor {
	descriptors := make([]tool.Descriptor, 0, len(a.ops))
	for _, op := range a.ops {
		descriptors = append(descriptors, op.descriptor)
	}
	return descriptors
}

// Execute runs one named operation.
func (a *Adapter) Execute(ctx context.Context, name string, args tool.Args) tool.Envelope {
	op, ok := a.byName[name]
	if !ok {
		return tool.Failf("Unknown tool: %s", name)
	}
	env := op.run(ctx, args)
	if !env.Success {
		log.Warn().Str("source", sourceID).Str("operation", name).Str("error", env.Error).Msg("tool call failed")
	}
	return env
}

// roverArg validates the rover argument against the enumerated set.
func roverArg(args tool.Args) (string, MissionSpec, error) {
	rover, ok := args.String("rover")
	if !ok {
		return "", MissionSpec{}, fmt.Errorf("Missing required parameter: rover")
	}
	rover = strings.ToLower(rover)
	mission, ok := Missions[rover]
	if !ok {
		return "", MissionSpec{}, fmt.Errorf("Unknown rover: %s. Available: %s", rover, strings.Join(RoverNames, ", "))
	}
	return rover, mission, nil
}

// cameraArg validates an optional camera argument against the mission's
// camera set. Returns "" when the argument was omitted.
func cameraArg(args tool.Args, rover string, mission MissionSpec) (string, error) {
	camera, ok := args.String("camera")
	if !ok {
		return "", nil
	}
	camera = strings.ToUpper(camera)
	if !mission.HasCamera(camera) {
		return "", fmt.Errorf("Invalid camera %s for %s", camera, rover)
	}
	return camera, nil
}

// PhotoView is the normalized photo shape returned to callers.
type PhotoView struct {
	ID        int        `json:"id"`
	Sol       int        `json:"sol"`
	EarthDate string     `json:"earth_date"`
	Camera    CameraView `json:"camera"`
	ImgSrc    string     `json:"img_src"`
	Rover     string     `json:"rover"`
}

// CameraView is the camera slice of a photo view.
type CameraView struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

func formatPhoto(photo *Photo) PhotoView {
	return PhotoView{
		ID:        photo.ID,
		Sol:       photo.Sol,
		EarthDate: photo.EarthDate,
		Camera: CameraView{
			Name:     photo.Camera.Name,
			FullName: photo.Camera.FullName,
		},
		ImgSrc: photo.ImgSrc,
		Rover:  photo.Rover.Name,
	}
}

func formatPhotos(photos []Photo) []PhotoView {
	out := make([]PhotoView, 0, len(photos))
	for i := range photos {
		out = append(out, formatPhoto(&photos[i]))
	}
	return out
}

// StatusData is the payload of get_status.
type StatusData struct {
	Name                 string   `json:"name"`
	Status               string   `json:"status"`
	LandingDate          string   `json:"landing_date"`
	LaunchDate           string   `json:"launch_date"`
	MissionDurationDays  int      `json:"mission_duration_days"`
	MissionDurationYears float64  `json:"mission_duration_years"`
	MaxSol               int      `json:"max_sol"`
	MaxDate              string   `json:"max_date"`
	TotalPhotos          int      `json:"total_photos"`
	AvailableCameras     []string `json:"available_cameras"`
}

// LatestData is the payload of get_latest.
type LatestData struct {
	Rover           string                 `json:"rover"`
	Count           int                    `json:"count"`
	LatestSol       *int                   `json:"latest_sol"`
	LatestEarthDate string                 `json:"latest_earth_date,omitempty"`
	Photos          []PhotoView            `json:"photos"`
	ByCamera        map[string][]PhotoView `json:"by_camera"`
}

// EarthDateData is the payload of get_by_earth_date.
type EarthDateData struct {
	Rover        string      `json:"rover"`
	EarthDate    string      `json:"earth_date"`
	CameraFilter string      `json:"camera_filter,omitempty"`
	Count        int         `json:"count"`
	Photos       []PhotoView `json:"photos"`
}

// SolData is the payload of get_by_sol.
type SolData struct {
	Rover        string      `json:"rover"`
	Sol          int         `json:"sol"`
	CameraFilter string      `json:"camera_filter,omitempty"`
	Count        int         `json:"count"`
	Photos       []PhotoView `json:"photos"`
}

// CameraData is the payload of get_by_camera.
type CameraData struct {
	Rover          string      `json:"rover"`
	Camera         string      `json:"camera"`
	CameraFullName string      `json:"camera_full_name"`
	Count          int         `json:"count"`
	Photos         []PhotoView `json:"photos"`
}

// RoverComparison is one rover's slice of the compare_all result.
type RoverComparison struct {
	Name                 string   `json:"name"`
	Status               string   `json:"status"`
	LandingDate          string   `json:"landing_date"`
	MissionDurationDays  int      `json:"mission_duration_days"`
	MissionDurationYears float64  `json:"mission_duration_years"`
	MaxSol               int      `json:"max_sol"`
	TotalPhotos          int      `json:"total_photos"`
	Cameras              []string `json:"cameras"`
}

// CompareSummary aggregates across rovers with known values.
type CompareSummary struct {
	TotalRovers          int      `json:"total_rovers"`
	ActiveRovers         []string `json:"active_rovers"`
	TotalPhotosAllRovers int      `json:"total_photos_all_rovers"`
	LongestMission       int      `json:"longest_mission"`
}

// CompareData is the payload of compare_all. Each rover entry is either a
// *RoverComparison or an error marker map.
type CompareData struct {
	Rovers  map[string]any `json:"rovers"`
	Summary CompareSummary `json:"summary"`
}

func (a *Adapter) getStatus(ctx context.Context, args tool.Args) tool.Envelope {
	rover, mission, err := roverArg(args)
	if err != nil {
		return tool.Fail(err.Error())
	}

	info, err := a.client.RoverInfo(ctx, rover)
	if err != nil {
		return tool.Failf("Failed to get status for %s: %v", rover, err)
	}

	days := MissionDuration(info.Status, info.LandingDate, info.MaxDate, a.now())
	data := &StatusData{
		Name:                 info.Name,
		Status:               info.Status,
		LandingDate:          info.LandingDate,
		LaunchDate:           info.LaunchDate,
		MissionDurationDays:  days,
		MissionDurationYears: DurationYears(days),
		MaxSol:               info.MaxSol,
		MaxDate:              info.MaxDate,
		TotalPhotos:          info.TotalPhotos,
		AvailableCameras:     mission.Cameras,
	}
	return tool.Okf(data, "%s status: %s - %d days on Mars", info.Name, info.Status, days)
}

func (a *Adapter) getLatest(ctx context.Context, args tool.Args) tool.Envelope {
	rover, _, err := roverArg(args)
	if err != nil {
		return tool.Fail(err.Error())
	}
	count := args.Int("count", defaultLatestCount)
	if count < 1 || count > maxLatestCount {
		return tool.Failf("Count must be between 1 and %d", maxLatestCount)
	}

	photos, err := a.client.LatestPhotos(ctx, rover, count)
	if err != nil {
		return tool.Failf("Failed to get latest photos for %s: %v", rover, err)
	}

	if len(photos) == 0 {
		data := &LatestData{Rover: rover, Photos: []PhotoView{}, ByCamera: map[string][]PhotoView{}}
		return tool.Okf(data, "No recent photos found for %s", rover)
	}

	byCamera := make(map[string][]PhotoView)
	for i := range photos {
		name := photos[i].Camera.Name
		byCamera[name] = append(byCamera[name], formatPhoto(&photos[i]))
	}

	latestSol := photos[0].Sol
	data := &LatestData{
		Rover:           rover,
		Count:           len(photos),
		LatestSol:       &latestSol,
		LatestEarthDate: photos[0].EarthDate,
		Photos:          formatPhotos(photos),
		ByCamera:        byCamera,
	}
	return tool.Okf(data, "Found %d latest photos from %s", len(photos), rover)
}

func (a *Adapter) getByEarthDate(ctx context.Context, args tool.Args) tool.Envelope {
	rover, mission, err := roverArg(args)
	if err != nil {
		return tool.Fail(err.Error())
	}
	earthDate, ok := args.String("earth_date")
	if !ok {
		return tool.Fail("Missing required parameter: earth_date")
	}
	if !tool.ValidDate(earthDate) {
		return tool.Fail("Earth date must be in YYYY-MM-DD format")
	}
	camera, err := cameraArg(args, rover, mission)
	if err != nil {
		return tool.Fail(err.Error())
	}

	photos, err := a.client.PhotosByEarthDate(ctx, rover, earthDate, camera)
	if err != nil {
		return tool.Failf("Failed to get photos for %s on %s: %v", rover, earthDate, err)
	}

	data := &EarthDateData{
		Rover:        rover,
		EarthDate:    earthDate,
		CameraFilter: camera,
		Count:        len(photos),
		Photos:       formatPhotos(photos),
	}
	message := fmt.Sprintf("Found %d photos from %s on %s", len(photos), rover, earthDate)
	if camera != "" {
		message += fmt.Sprintf(" (%s camera)", camera)
	}
	return tool.Ok(data, message)
}

func (a *Adapter) getBySol(ctx context.Context, args tool.Args) tool.Envelope {
	rover, mission, err := roverArg(args)
	if err != nil {
		return tool.Fail(err.Error())
	}
	if !args.Has("sol") {
		return tool.Fail("Missing required parameter: sol")
	}
	sol := args.Int("sol", -1)
	if sol < 0 || sol > mission.MaxSol {
		return tool.Failf("Sol %d out of range for %s (0-%d)", sol, rover, mission.MaxSol)
	}
	camera, err := cameraArg(args, rover, mission)
	if err != nil {
		return tool.Fail(err.Error())
	}

	photos, err := a.client.PhotosBySol(ctx, rover, sol, camera)
	if err != nil {
		return tool.Failf("Failed to get photos for %s on sol %d: %v", rover, sol, err)
	}

	data := &SolData{
		Rover:        rover,
		Sol:          sol,
		CameraFilter: camera,
		Count:        len(photos),
		Photos:       formatPhotos(photos),
	}
	message := fmt.Sprintf("Found %d photos from %s on sol %d", len(photos), rover, sol)
	if camera != "" {
		message += fmt.Sprintf(" (%s camera)", camera)
	}
	return tool.Ok(data, message)
}

func (a *Adapter) getByCamera(ctx context.Context, args tool.Args) tool.Envelope {
	rover, mission, err := roverArg(args)
	if err != nil {
		return tool.Fail(err.Error())
	}
	camera, ok := args.String("camera")
	if !ok {
		return tool.Fail("Missing required parameter: camera")
	}
	camera = strings.ToUpper(camera)
	if !mission.HasCamera(camera) {
		return tool.Failf("Invalid camera %s for %s", camera, rover)
	}
	count := args.Int("count", defaultCameraCount)
	if count < 1 || count > maxCameraCount {
		return tool.Failf("Count must be between 1 and %d", maxCameraCount)
	}

	// Oversample the newest photos and filter locally; upstream cannot
	// combine "latest" with a camera filter.
	latest, err := a.client.LatestPhotos(ctx, rover, cameraOversample)
	if err != nil {
		return tool.Failf("Failed to get %s photos for %s: %v", camera, rover, err)
	}

	var filtered []Photo
	for i := range latest {
		if latest[i].Camera.Name == camera {
			filtered = append(filtered, latest[i])
			if len(filtered) == count {
				break
			}
		}
	}

	fullName := camera
	if len(filtered) > 0 {
		fullName = filtered[0].Camera.FullName
	}

	data := &CameraData{
		Rover:          rover,
		Camera:         camera,
		CameraFullName: fullName,
		Count:          len(filtered),
		Photos:         formatPhotos(filtered),
	}
	return tool.Okf(data, "Found %d recent %s photos from %s", len(filtered), camera, rover)
}

func (a *Adapter) compareAll(ctx context.Context, _ tool.Args) tool.Envelope {
	type roverResult struct {
		comparison *RoverComparison
		err        error
	}
	results := make([]roverResult, len(RoverNames))

	// Sub-fetches are independent; one rover failing must not abort the
	// others, so every goroutine returns nil and failures land per-slot.
	group, groupCtx := errgroup.WithContext(ctx)
	for i, name := range RoverNames {
		group.Go(func() error {
			info, err := a.client.RoverInfo(groupCtx, name)
			if err != nil {
				results[i] = roverResult{err: err}
				return nil
			}
			days := MissionDuration(info.Status, info.LandingDate, info.MaxDate, a.now())
			results[i] = roverResult{comparison: &RoverComparison{
				Name:                 info.Name,
				Status:               info.Status,
				LandingDate:          info.LandingDate,
				MissionDurationDays:  days,
				MissionDurationYears: DurationYears(days),
				MaxSol:               info.MaxSol,
				TotalPhotos:          info.TotalPhotos,
				Cameras:              Missions[name].Cameras,
			}}
			return nil
		})
	}
	_ = group.Wait()

	rovers := make(map[string]any, len(RoverNames))
	summary := CompareSummary{
		TotalRovers:  len(RoverNames),
		ActiveRovers: []string{},
	}
	for i, name := range RoverNames {
		result := results[i]
		if result.err != nil {
			rovers[name] = map[string]any{"error": result.err.Error()}
			continue
		}
		comparison := result.comparison
		rovers[name] = comparison
		summary.TotalPhotosAllRovers += comparison.TotalPhotos
		if comparison.Status == "active" {
			summary.ActiveRovers = append(summary.ActiveRovers, comparison.Name)
		}
		if comparison.MissionDurationDays > summary.LongestMission {
			summary.LongestMission = comparison.MissionDurationDays
		}
	}

	data := &CompareData{Rovers: rovers, Summary: summary}
	return tool.Okf(data, "Mars rover comparison: %d active, %d total photos",
		len(summary.ActiveRovers), summary.TotalPhotosAllRovers)
}
