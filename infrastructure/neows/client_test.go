package neows_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nasa-server/services/space-tools/infrastructure/nasaapi"
	neowsclient "nasa-server/services/space-tools/infrastructure/neows"
)

func newCaller(t *testing.T, handler http.HandlerFunc) *nasaapi.Caller {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	retry := nasaapi.DefaultRetryConfig()
	retry.MaxAttempts = 1

	return nasaapi.New(nasaapi.Options{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
		Retry:   retry,
	})
}

func TestFeedParams(t *testing.T) {
	var gotStart, gotEnd, gotDetailed string
	caller := newCaller(t, func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start_date")
		gotEnd = r.URL.Query().Get("end_date")
		gotDetailed = r.URL.Query().Get("detailed")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"element_count": 1,
			"near_earth_objects": {
				"2024-06-01": [{"id":"3542519","name":"(2010 PK9)","is_potentially_hazardous_asteroid":true}]
			}
		}`))
	})

	client := neowsclient.NewClient(caller)
	feed, err := client.Feed(context.Background(), "2024-06-01", "2024-06-07")
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if gotStart != "2024-06-01" || gotEnd != "2024-06-07" || gotDetailed != "true" {
		t.Fatalf("params = start:%q end:%q detailed:%q", gotStart, gotEnd, gotDetailed)
	}
	if feed.ElementCount != 1 {
		t.Fatalf("element_count = %d", feed.ElementCount)
	}
	asteroids := feed.Asteroids()
	if len(asteroids) != 1 || asteroids[0].ID != "3542519" || !asteroids[0].IsPotentiallyHazardous {
		t.Fatalf("asteroids = %+v", asteroids)
	}
}

func TestLookupPath(t *testing.T) {
	var gotPath string
	caller := newCaller(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"2465633","name":"465633 (2009 JR5)","absolute_magnitude_h":20.44}`))
	})

	client := neowsclient.NewClient(caller)
	asteroid, err := client.Lookup(context.Background(), "2465633")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotPath != "/neo/rest/v1/neo/2465633" {
		t.Fatalf("path = %q", gotPath)
	}
	if asteroid.AbsoluteMagnitudeH != 20.44 {
		t.Fatalf("absolute_magnitude_h = %v", asteroid.AbsoluteMagnitudeH)
	}
}
