package marsrover

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"nasa-server/services/space-tools/domain/tool"
)

type stubClient struct {
	infoCalls   []string
	latestCalls []string
	earthCalls  []string
	solCalls    []string

	info      map[string]*Rover
	infoErr   map[string]error
	latest    []Photo
	photos    []Photo
	photosErr error
}

func (s *stubClient) RoverInfo(_ context.Context, rover string) (*Rover, error) {
	s.infoCalls = append(s.infoCalls, rover)
	if err := s.infoErr[rover]; err != nil {
		return nil, err
	}
	if info, ok := s.info[rover]; ok {
		return info, nil
	}
	return nil, errors.New("no manifest")
}

func (s *stubClient) LatestPhotos(_ context.Context, rover string, count int) ([]Photo, error) {
	s.latestCalls = append(s.latestCalls, rover+"/"+strconv.Itoa(count))
	if s.photosErr != nil {
		return nil, s.photosErr
	}
	photos := s.latest
	if count > 0 && len(photos) > count {
		photos = photos[:count]
	}
	return photos, nil
}

func (s *stubClient) PhotosByEarthDate(_ context.Context, rover, earthDate, camera string) ([]Photo, error) {
	s.earthCalls = append(s.earthCalls, rover+"/"+earthDate+"/"+camera)
	if s.photosErr != nil {
		return nil, s.photosErr
	}
	return s.photos, nil
}

func (s *stubClient) PhotosBySol(_ context.Context, rover string, sol int, camera string) ([]Photo, error) {
	s.solCalls = append(s.solCalls, rover+"/"+strconv.Itoa(sol)+"/"+camera)
	if s.photosErr != nil {
		return nil, s.photosErr
	}
	return s.photos, nil
}

func newTestAdapter(client *stubClient) *Adapter {
	a := NewAdapter(client)
	a.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return a
}

func photo(id int, camera string) Photo {
	return Photo{
		ID:        id,
		Sol:       1000,
		EarthDate: "2024-05-30",
		Camera:    Camera{Name: camera, FullName: camera + " Camera"},
		ImgSrc:    "https://mars.nasa.gov/" + strconv.Itoa(id) + ".jpg",
		Rover:     RoverRef{Name: "Curiosity"},
	}
}

func TestMissionDuration(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      string
		landingDate string
		maxDate     string
		want        int
	}{
		{"active counts to now", "active", "2012-08-06", "2024-05-20", 4317},
		{"complete counts to max date", "complete", "2004-01-04", "2010-03-21", 2268},
		{"complete without max date", "complete", "2004-01-04", "", 0},
		{"complete with malformed max date", "complete", "2004-01-04", "unknown", 0},
		{"unparseable landing", "active", "not-a-date", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MissionDuration(tc.status, tc.landingDate, tc.maxDate, now); got != tc.want {
				t.Fatalf("MissionDuration = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDurationYears(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{0, 0},
		{365, 1.0},
		{4317, 11.8},
		{2268, 6.2},
	}
	for _, tc := range tests {
		if got := DurationYears(tc.days); got != tc.want {
			t.Errorf("DurationYears(%d) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestUnknownRover(t *testing.T) {
	client := &stubClient{}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_status", tool.Args{"rover": "perseverance"})
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Error != "Unknown rover: perseverance. Available: curiosity, opportunity, spirit" {
		t.Fatalf("error = %q", env.Error)
	}
	if len(client.infoCalls) != 0 {
		t.Fatal("unknown rover must not reach upstream")
	}
}

func TestRoverNameCaseInsensitive(t *testing.T) {
	client := &stubClient{info: map[string]*Rover{
		"curiosity": {Name: "Curiosity", Status: "active", LandingDate: "2012-08-06", MaxSol: 4100, MaxDate: "2024-05-20", TotalPhotos: 695000},
	}}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_status", tool.Args{"rover": "Curiosity"})
	if !env.Success {
		t.Fatalf("get_status failed: %s", env.Error)
	}
	if len(client.infoCalls) != 1 || client.infoCalls[0] != "curiosity" {
		t.Fatalf("info calls = %v, want lowercased rover", client.infoCalls)
	}
}

func TestGetLatestDefaultCount(t *testing.T) {
	client := &stubClient{latest: []Photo{photo(1, "NAVCAM"), photo(2, "MAST")}}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_latest", tool.Args{"rover": "curiosity"})
	if !env.Success {
		t.Fatalf("get_latest failed: %s", env.Error)
	}
	if len(client.latestCalls) != 1 || client.latestCalls[0] != "curiosity/25" {
		t.Fatalf("latest calls = %v, want default count 25", client.latestCalls)
	}

	data := env.Data.(*LatestData)
	if data.Count != 2 {
		t.Fatalf("count = %d, want 2", data.Count)
	}
	if data.LatestSol == nil || *data.LatestSol != 1000 {
		t.Fatalf("latest_sol = %v, want 1000", data.LatestSol)
	}
	if len(data.ByCamera["NAVCAM"]) != 1 || len(data.ByCamera["MAST"]) != 1 {
		t.Fatalf("by_camera grouping wrong: %v", data.ByCamera)
	}
}

func TestGetLatestCountBounds(t *testing.T) {
	for _, count := range []int{0, 101} {
		client := &stubClient{}
		a := newTestAdapter(client)

		env := a.Execute(context.Background(), "get_latest", tool.Args{"rover": "curiosity", "count": count})
		if env.Success || env.Error != "Count must be between 1 and 100" {
			t.Fatalf("count %d: success=%v error=%q", count, env.Success, env.Error)
		}
		if len(client.latestCalls) != 0 {
			t.Fatal("invalid count must not reach upstream")
		}
	}
}

func TestGetLatestEmpty(t *testing.T) {
	client := &stubClient{}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_latest", tool.Args{"rover": "spirit"})
	if !env.Success {
		t.Fatalf("empty result should still succeed: %s", env.Error)
	}
	if env.Message != "No recent photos found for spirit" {
		t.Fatalf("message = %q", env.Message)
	}
	data := env.Data.(*LatestData)
	if data.LatestSol != nil {
		t.Fatal("latest_sol should be null when no photos exist")
	}
}

func TestGetBySolRange(t *testing.T) {
	client := &stubClient{photos: []Photo{photo(1, "PANCAM")}}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_by_sol", tool.Args{"rover": "spirit", "sol": 2209})
	if env.Success || env.Error != "Sol 2209 out of range for spirit (0-2208)" {
		t.Fatalf("success=%v error=%q", env.Success, env.Error)
	}

	env = a.Execute(context.Background(), "get_by_sol", tool.Args{"rover": "spirit", "sol": 0})
	if !env.Success {
		t.Fatalf("sol 0 should be valid: %s", env.Error)
	}

	env = a.Execute(context.Background(), "get_by_sol", tool.Args{"rover": "spirit"})
	if env.Success || env.Error != "Missing required parameter: sol" {
		t.Fatalf("success=%v error=%q", env.Success, env.Error)
	}
}

func TestCameraValidation(t *testing.T) {
	client := &stubClient{photos: []Photo{photo(1, "MAST")}}
	a := newTestAdapter(client)

	// MAST exists on Curiosity but not on Spirit
	env := a.Execute(context.Background(), "get_by_earth_date", tool.Args{
		"rover":      "spirit",
		"earth_date": "2005-03-01",
		"camera":     "MAST",
	})
	if env.Success || env.Error != "Invalid camera MAST for spirit" {
		t.Fatalf("success=%v error=%q", env.Success, env.Error)
	}
	if len(client.earthCalls) != 0 {
		t.Fatal("invalid camera must not reach upstream")
	}

	env = a.Execute(context.Background(), "get_by_earth_date", tool.Args{
		"rover":      "curiosity",
		"earth_date": "2024-05-30",
		"camera":     "mast",
	})
	if !env.Success {
		t.Fatalf("lowercase camera should validate: %s", env.Error)
	}
	if client.earthCalls[0] != "curiosity/2024-05-30/MAST" {
		t.Fatalf("earth calls = %v, want uppercased camera", client.earthCalls)
	}
	if env.Message != "Found 1 photos from curiosity on 2024-05-30 (MAST camera)" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestGetByCameraOversamplesAndFilters(t *testing.T) {
	latest := []Photo{
		photo(1, "NAVCAM"),
		photo(2, "MAST"),
		photo(3, "NAVCAM"),
		photo(4, "FHAZ"),
		photo(5, "NAVCAM"),
	}
	client := &stubClient{latest: latest}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_by_camera", tool.Args{
		"rover":  "curiosity",
		"camera": "NAVCAM",
		"count":  2,
	})
	if !env.Success {
		t.Fatalf("get_by_camera failed: %s", env.Error)
	}
	if len(client.latestCalls) != 1 || client.latestCalls[0] != "curiosity/100" {
		t.Fatalf("latest calls = %v, want oversample of 100", client.latestCalls)
	}

	data := env.Data.(*CameraData)
	if data.Count != 2 {
		t.Fatalf("count = %d, want 2 after filtering", data.Count)
	}
	if data.Photos[0].ID != 1 || data.Photos[1].ID != 3 {
		t.Fatalf("photos = %v, want ids 1 and 3 in feed order", data.Photos)
	}
	if data.CameraFullName != "NAVCAM Camera" {
		t.Fatalf("camera_full_name = %q", data.CameraFullName)
	}
}

func TestCompareAllPartialFailure(t *testing.T) {
	client := &stubClient{
		info: map[string]*Rover{
			"curiosity": {Name: "Curiosity", Status: "active", LandingDate: "2012-08-06", MaxSol: 4100, MaxDate: "2024-05-20", TotalPhotos: 695000},
			"spirit":    {Name: "Spirit", Status: "complete", LandingDate: "2004-01-04", MaxSol: 2208, MaxDate: "2010-03-21", TotalPhotos: 124550},
		},
		infoErr: map[string]error{
			"opportunity": errors.New("NASA API error (status 503)"),
		},
	}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "compare_all", tool.Args{})
	if !env.Success {
		t.Fatalf("compare_all must succeed despite one rover failing: %s", env.Error)
	}

	data := env.Data.(*CompareData)
	if len(data.Rovers) != 3 {
		t.Fatalf("rovers = %d entries, want 3", len(data.Rovers))
	}

	failed, ok := data.Rovers["opportunity"].(map[string]any)
	if !ok || failed["error"] == "" {
		t.Fatalf("opportunity entry = %v, want error marker", data.Rovers["opportunity"])
	}

	if data.Summary.TotalRovers != 3 {
		t.Fatalf("total_rovers = %d, want 3", data.Summary.TotalRovers)
	}
	if data.Summary.TotalPhotosAllRovers != 695000+124550 {
		t.Fatalf("total_photos = %d, failed rover must not contribute", data.Summary.TotalPhotosAllRovers)
	}
	if len(data.Summary.ActiveRovers) != 1 || data.Summary.ActiveRovers[0] != "Curiosity" {
		t.Fatalf("active_rovers = %v", data.Summary.ActiveRovers)
	}
}

func TestHasCamera(t *testing.T) {
	mission := Missions["curiosity"]
	if !mission.HasCamera("chemcam") {
		t.Fatal("camera match should be case-insensitive")
	}
	if mission.HasCamera("PANCAM") {
		t.Fatal("PANCAM is not a Curiosity camera")
	}
}
