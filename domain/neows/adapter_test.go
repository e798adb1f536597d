package neows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"nasa-server/services/space-tools/domain/tool"
)

type stubClient struct {
	feedCalls   []string
	lookupCalls []string

	feed      *Feed
	feedErr   error
	asteroid  *Asteroid
	lookupErr error
}

func (s *stubClient) Feed(_ context.Context, startDate, endDate string) (*Feed, error) {
	s.feedCalls = append(s.feedCalls, startDate+".."+endDate)
	if s.feedErr != nil {
		return nil, s.feedErr
	}
	return s.feed, nil
}

func (s *stubClient) Lookup(_ context.Context, asteroidID string) (*Asteroid, error) {
	s.lookupCalls = append(s.lookupCalls, asteroidID)
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.asteroid, nil
}

func newTestAdapter(client *stubClient) *Adapter {
	a := NewAdapter(client)
	a.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func sampleFeed() *Feed {
	return &Feed{
		ElementCount: 3,
		NearEarthObjects: map[string][]Asteroid{
			"2024-06-01": {
				asteroidWithApproach("1", false, 0.1, 2_000_000),
				asteroidWithApproach("2", true, 0.6, 900_000),
			},
			"2024-06-02": {
				asteroidWithApproach("3", false, 1.2, 8_000_000),
			},
		},
	}
}

func TestGetWeekWindow(t *testing.T) {
	client := &stubClient{feed: sampleFeed()}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_week", tool.Args{})
	if !env.Success {
		t.Fatalf("get_week failed: %s", env.Error)
	}
	if len(client.feedCalls) != 1 || client.feedCalls[0] != "2024-06-01..2024-06-07" {
		t.Fatalf("feed calls = %v, want one 7-day window from today", client.feedCalls)
	}

	data, ok := env.Data.(*WeekData)
	if !ok {
		t.Fatalf("Data = %T, want *WeekData", env.Data)
	}
	if data.TotalCount != 3 || data.HazardousCount != 1 {
		t.Fatalf("counts = %d total, %d hazardous; want 3, 1", data.TotalCount, data.HazardousCount)
	}
	if env.Message != "Found 3 asteroids this week (1 potentially hazardous)" {
		t.Fatalf("message = %q", env.Message)
	}
	if len(data.ByDate["2024-06-01"]) != 2 || len(data.ByDate["2024-06-02"]) != 1 {
		t.Fatalf("by_date grouping wrong: %v", data.ByDate)
	}
}

func TestGetDateRangeValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    tool.Args
		wantErr string
	}{
		{"missing start", tool.Args{"end_date": "2024-06-05"}, "Missing required parameter: start_date"},
		{"missing end", tool.Args{"start_date": "2024-06-01"}, "Missing required parameter: end_date"},
		{"bad format", tool.Args{"start_date": "06/01/2024", "end_date": "2024-06-05"}, "Dates must be in YYYY-MM-DD format"},
		{"inverted", tool.Args{"start_date": "2024-06-10", "end_date": "2024-06-01"}, "Start date must be before end date"},
		{"too wide", tool.Args{"start_date": "2024-06-01", "end_date": "2024-06-09"}, "Date range cannot exceed 7 days"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := &stubClient{feed: sampleFeed()}
			a := newTestAdapter(client)

			env := a.Execute(context.Background(), "get_date_range", tc.args)
			if env.Success {
				t.Fatal("expected failure envelope")
			}
			if env.Error != tc.wantErr {
				t.Fatalf("error = %q, want %q", env.Error, tc.wantErr)
			}
			if len(client.feedCalls) != 0 {
				t.Fatal("validation failure must not reach upstream")
			}
		})
	}
}

func TestGetDateRangeSevenDaysAllowed(t *testing.T) {
	client := &stubClient{feed: sampleFeed()}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_date_range", tool.Args{
		"start_date": "2024-06-01",
		"end_date":   "2024-06-08",
	})
	if !env.Success {
		t.Fatalf("7-day span should be allowed, got: %s", env.Error)
	}
	data := env.Data.(*RangeData)
	if data.DateRange != "2024-06-01 to 2024-06-08" {
		t.Fatalf("date_range = %q", data.DateRange)
	}
}

func TestGetLargestCountBounds(t *testing.T) {
	for _, count := range []int{0, 21, -3} {
		client := &stubClient{feed: sampleFeed()}
		a := newTestAdapter(client)

		env := a.Execute(context.Background(), "get_largest", tool.Args{"count": count})
		if env.Success {
			t.Fatalf("count %d should fail", count)
		}
		if env.Error != "Count must be between 1 and 20" {
			t.Fatalf("error = %q", env.Error)
		}
		if len(client.feedCalls) != 0 {
			t.Fatal("invalid count must not reach upstream")
		}
	}
}

func TestGetLargestDefaultsToFive(t *testing.T) {
	feed := &Feed{NearEarthObjects: map[string][]Asteroid{
		"2024-06-01": {
			asteroidWithApproach("1", false, 0.1, 1),
			asteroidWithApproach("2", false, 0.9, 1),
			asteroidWithApproach("3", false, 0.4, 1),
			asteroidWithApproach("4", false, 0.7, 1),
			asteroidWithApproach("5", false, 0.2, 1),
			asteroidWithApproach("6", false, 0.8, 1),
			asteroidWithApproach("7", false, 0.3, 1),
		},
	}}
	client := &stubClient{feed: feed}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_largest", tool.Args{})
	if !env.Success {
		t.Fatalf("get_largest failed: %s", env.Error)
	}
	data := env.Data.(*LargestData)
	if data.Count != 5 {
		t.Fatalf("count = %d, want default 5", data.Count)
	}
	if data.Asteroids[0].Name != "Asteroid 2" {
		t.Fatalf("largest first = %q, want Asteroid 2", data.Asteroids[0].Name)
	}
}

func TestGetPotentiallyHazardousEmptyMessage(t *testing.T) {
	feed := &Feed{NearEarthObjects: map[string][]Asteroid{
		"2024-06-01": {asteroidWithApproach("1", false, 0.1, 1)},
	}}
	client := &stubClient{feed: feed}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_potentially_hazardous", tool.Args{})
	if !env.Success {
		t.Fatalf("unexpected failure: %s", env.Error)
	}
	if env.Message != "No potentially hazardous asteroids found this week" {
		t.Fatalf("message = %q", env.Message)
	}
	data := env.Data.(*HazardousData)
	if data.HazardousCount != 0 {
		t.Fatalf("hazardous_count = %d, want 0", data.HazardousCount)
	}
}

func TestAnalyzeDangerOperation(t *testing.T) {
	ast := asteroidWithApproach("2465633", true, 0.6, 900_000)
	client := &stubClient{asteroid: &ast}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "analyze_danger", tool.Args{"asteroid_id": "2465633"})
	if !env.Success {
		t.Fatalf("analyze_danger failed: %s", env.Error)
	}
	data := env.Data.(*DangerData)
	if data.DangerAnalysis.ThreatLevel != ThreatHigh {
		t.Fatalf("threat = %s, want HIGH", data.DangerAnalysis.ThreatLevel)
	}
	if env.Message != "Danger analysis for Asteroid 2465633: HIGH" {
		t.Fatalf("message = %q", env.Message)
	}

	env = a.Execute(context.Background(), "analyze_danger", tool.Args{"asteroid_id": "   "})
	if env.Success || env.Error != "Asteroid ID cannot be empty" {
		t.Fatalf("blank id: success=%v error=%q", env.Success, env.Error)
	}
	if len(client.lookupCalls) != 1 {
		t.Fatal("blank id must not reach upstream")
	}
}

func TestAnalyzeDangerNoApproachData(t *testing.T) {
	ast := Asteroid{
		ID:                     "999",
		Name:                   "Lonely",
		IsPotentiallyHazardous: true,
		EstimatedDiameter: EstimatedDiameter{
			Kilometers: DiameterRange{Max: 0.3},
		},
	}
	client := &stubClient{asteroid: &ast}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "analyze_danger", tool.Args{"asteroid_id": "999"})
	if env.Success {
		t.Fatal("asteroid without close approach data must fail")
	}
	if env.Error != "Failed to analyze asteroid 999: no close approach data available" {
		t.Fatalf("error = %q", env.Error)
	}
	// the envelope must stay serializable at the call surfaces
	if _, err := json.Marshal(env); err != nil {
		t.Fatalf("envelope does not marshal: %v", err)
	}
}

func TestUpstreamFailureBecomesEnvelope(t *testing.T) {
	client := &stubClient{feedErr: errors.New("NASA API error (status 503)")}
	a := newTestAdapter(client)

	env := a.Execute(context.Background(), "get_today", tool.Args{})
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Error == "" {
		t.Fatal("failure envelope must carry the error")
	}
}

func TestUnknownOperation(t *testing.T) {
	a := newTestAdapter(&stubClient{})
	env := a.Execute(context.Background(), "get_everything", tool.Args{})
	if env.Success || env.Error != "Unknown tool: get_everything" {
		t.Fatalf("success=%v error=%q", env.Success, env.Error)
	}
}
