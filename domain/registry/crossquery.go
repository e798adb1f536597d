package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"nasa-server/services/space-tools/domain/apod"
	"nasa-server/services/space-tools/domain/marsrover"
	"nasa-server/services/space-tools/domain/neows"
	"nasa-server/services/space-tools/domain/tool"
)

// Composite query names.
const (
	QuerySpaceSummary  = "space_summary"
	QueryCorrelateDate = "correlate_date"
)

// Engine answers fixed composite queries that span multiple sources. It
// calls the adapters directly, beside the registry's namespaced dispatch.
type Engine struct {
	apod      tool.Adapter
	neows     tool.Adapter
	marsrover tool.Adapter
	now       func() time.Time
}

// NewEngine creates the cross-source query engine.
func NewEngine(apodAdapter, neowsAdapter, marsroverAdapter tool.Adapter) *Engine {
	return &Engine{
		apod:      apodAdapter,
		neows:     neowsAdapter,
		marsrover: marsroverAdapter,
		now:       time.Now,
	}
}

// Run executes one composite query by name. Like registry dispatch, no
// error or panic escapes as anything but a failure envelope.
func (e *Engine) Run(ctx context.Context, query string, args tool.Args) (env tool.Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("query", query).Interface("panic", rec).Msg("cross-source query panicked")
			env = tool.Failf("Cross-source query failed: %v", rec)
		}
	}()

	switch query {
	case QuerySpaceSummary:
		return e.spaceSummary(ctx, args)
	case QueryCorrelateDate:
		return e.correlateDate(ctx, args)
	default:
		return tool.Failf("Unknown cross-source query: %s", query)
	}
}

// AsteroidActivity is the asteroid slice of a space summary.
type AsteroidActivity struct {
	TotalThisWeek  int `json:"total_this_week"`
	HazardousCount int `json:"hazardous_count"`
}

// MarsExploration is the Mars slice of a space summary.
type MarsExploration struct {
	LatestPhotos int    `json:"latest_photos"`
	LatestSol    *int   `json:"latest_sol"`
	RoverStatus  string `json:"rover_status"`
}

// SpaceSummary aggregates one day's view across all three sources. Slices
// whose sub-call failed are null.
type SpaceSummary struct {
	Date               string            `json:"date"`
	AstronomyHighlight any               `json:"astronomy_highlight"`
	AsteroidActivity   *AsteroidActivity `json:"asteroid_activity"`
	MarsExploration    *MarsExploration  `json:"mars_exploration"`
}

func (e *Engine) spaceSummary(ctx context.Context, args tool.Args) tool.Envelope {
	date, ok := args.String("date")
	if !ok {
		date = e.now().Format("2006-01-02")
	}

	var apodResult, asteroidsResult, marsResult tool.Envelope

	// The three sub-calls are independent; each failure only degrades its
	// own slice of the summary.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		apodResult = e.apod.Execute(groupCtx, "get_by_date", tool.Args{"date": date})
		return nil
	})
	group.Go(func() error {
		asteroidsResult = e.neows.Execute(groupCtx, "get_week", tool.Args{})
		return nil
	})
	group.Go(func() error {
		marsResult = e.marsrover.Execute(groupCtx, "get_latest", tool.Args{"rover": "curiosity", "count": 5})
		return nil
	})
	_ = group.Wait()

	summary := &SpaceSummary{Date: date}
	if apodResult.Success {
		summary.AstronomyHighlight = apodResult.Data
	}
	if asteroidsResult.Success {
		if week, ok := asteroidsResult.Data.(*neows.WeekData); ok {
			summary.AsteroidActivity = &AsteroidActivity{
				TotalThisWeek:  week.TotalCount,
				HazardousCount: week.HazardousCount,
			}
		}
	}
	if marsResult.Success {
		if latest, ok := marsResult.Data.(*marsrover.LatestData); ok {
			summary.MarsExploration = &MarsExploration{
				LatestPhotos: len(latest.Photos),
				LatestSol:    latest.LatestSol,
				RoverStatus:  "active",
			}
		}
	}

	return tool.Okf(summary, "Space summary for %s compiled from APOD, NeoWs, and Mars Rover data", date)
}

// Correlation is the payload of correlate_date. Slices whose sub-call
// failed are null; insights only cover slices that succeeded.
type Correlation struct {
	Date                string   `json:"date"`
	Apod                any      `json:"apod"`
	Asteroids           any      `json:"asteroids"`
	MarsPhotos          any      `json:"mars_photos"`
	CorrelationInsights []string `json:"correlation_insights"`
}

func (e *Engine) correlateDate(ctx context.Context, args tool.Args) tool.Envelope {
	date, ok := args.String("date")
	if !ok {
		return tool.Fail("Date parameter required")
	}

	var apodResult, asteroidsResult, marsResult tool.Envelope

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		apodResult = e.apod.Execute(groupCtx, "get_by_date", tool.Args{"date": date})
		return nil
	})
	group.Go(func() error {
		asteroidsResult = e.neows.Execute(groupCtx, "get_date_range", tool.Args{
			"start_date": date,
			"end_date":   date,
		})
		return nil
	})
	group.Go(func() error {
		marsResult = e.marsrover.Execute(groupCtx, "get_by_earth_date", tool.Args{
			"rover":      "curiosity",
			"earth_date": date,
		})
		return nil
	})
	_ = group.Wait()

	correlation := &Correlation{
		Date:                date,
		CorrelationInsights: generateInsights(apodResult, asteroidsResult, marsResult),
	}
	if apodResult.Success {
		correlation.Apod = apodResult.Data
	}
	if asteroidsResult.Success {
		correlation.Asteroids = asteroidsResult.Data
	}
	if marsResult.Success {
		correlation.MarsPhotos = marsResult.Data
	}

	return tool.Okf(correlation, "Correlated space data for %s", date)
}

// generateInsights derives the fixed insight sentences: asteroid/APOD first,
// Mars second, each omitted when its preconditions fail. An empty list is a
// valid result.
func generateInsights(apodResult, asteroidsResult, marsResult tool.Envelope) []string {
	insights := []string{}

	if apodResult.Success && asteroidsResult.Success {
		picture, pictureOk := apodResult.Data.(*apod.Picture)
		asteroids, asteroidsOk := asteroidsResult.Data.(*neows.RangeData)
		if pictureOk && asteroidsOk && asteroids.TotalCount > 0 {
			insights = append(insights, fmt.Sprintf(
				"On this date, %d asteroids approached Earth while the astronomy picture featured: %s",
				asteroids.TotalCount, picture.Title))
		}
	}

	if marsResult.Success {
		if photos, ok := marsResult.Data.(*marsrover.EarthDateData); ok && photos.Count > 0 {
			insights = append(insights, fmt.Sprintf(
				"Curiosity rover captured %d photos on this Earth date", photos.Count))
		}
	}

	return insights
}
