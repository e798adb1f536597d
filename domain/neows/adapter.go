package neows

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"nasa-server/services/space-tools/domain/tool"
)

const (
	sourceID = "neows"

	// NASA caps feed queries at 7 days.
	maxRangeDays = 7

	defaultLargestCount = 5
	minLargestCount     = 1
	maxLargestCount     = 20
)

type operation struct {
	descriptor tool.Descriptor
	run        func(ctx context.Context, args tool.Args) tool.Envelope
}

// Adapter exposes NASA's Near Earth Object Web Service as tool operations.
type Adapter struct {
	client Client
	now    func() time.Time
	ops    []operation
	byName map[string]*operation
}

var _ tool.Adapter = (*Adapter)(nil)

// NewAdapter creates the NeoWs adapter.
func NewAdapter(client Client) *Adapter {
	a := &Adapter{
		client: client,
		now:    time.Now,
	}

	a.ops = []operation{
		{
			descriptor: tool.Descriptor{
				Name:        "get_today",
				Description: "Get asteroids approaching Earth today",
				Parameters:  tool.ObjectSchema(map[string]tool.Property{}),
			},
			run: a.getToday,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_week",
				Description: "Get asteroids approaching Earth this week",
				Parameters:  tool.ObjectSchema(map[string]tool.Property{}),
			},
			run: a.getWeek,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_date_range",
				Description: "Get asteroids for a specific date range (max 7 days)",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"start_date": {
						Type:        "string",
						Description: "Start date in YYYY-MM-DD format",
						Pattern:     `^\d{4}-\d{2}-\d{2}$`,
					},
					"end_date": {
						Type:        "string",
						Description: "End date in YYYY-MM-DD format",
						Pattern:     `^\d{4}-\d{2}-\d{2}$`,
					},
				}, "start_date", "end_date"),
			},
			run: a.getDateRange,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_potentially_hazardous",
				Description: "Get only potentially hazardous asteroids for this week",
				Parameters:  tool.ObjectSchema(map[string]tool.Property{}),
			},
			run: a.getPotentiallyHazardous,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_largest",
				Description: "Get the largest asteroids approaching this week",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"count": {
						Type:        "integer",
						Description: "Number of asteroids to return (1-20)",
						Minimum:     tool.Float(minLargestCount),
						Maximum:     tool.Float(maxLargestCount),
						Default:     defaultLargestCount,
					},
				}),
			},
			run: a.getLargest,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "analyze_danger",
				Description: "Analyze the danger level of a specific asteroid",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"asteroid_id": {
						Type:        "string",
						Description: "NASA asteroid ID (e.g. '2465633')",
					},
				}, "asteroid_id"),
			},
			run: a.analyzeDanger,
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
	return "Access NASA's Near Earth Object data for asteroids and their threat analysis"
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

// weekWindow is the rolling 7-day feed window starting today.
func (a *Adapter) weekWindow() (string, string) {
	today := a.now()
	return today.Format("2006-01-02"), today.AddDate(0, 0, 6).Format("2006-01-02")
}

// TodayData is the payload of get_today.
type TodayData struct {
	TotalCount     int               `json:"total_count"`
	HazardousCount int               `json:"hazardous_count"`
	Asteroids      []AsteroidSummary `json:"asteroids"`
}

// WeekData is the payload of get_week, with asteroids also grouped by
// approach date.
type WeekData struct {
	TotalCount     int                          `json:"total_count"`
	HazardousCount int                          `json:"hazardous_count"`
	Asteroids      []AsteroidSummary            `json:"asteroids"`
	ByDate         map[string][]AsteroidSummary `json:"by_date"`
}

// RangeData is the payload of get_date_range.
type RangeData struct {
	TotalCount int               `json:"total_count"`
	DateRange  string            `json:"date_range"`
	Asteroids  []AsteroidSummary `json:"asteroids"`
}

// HazardousData is the payload of get_potentially_hazardous.
type HazardousData struct {
	HazardousCount int              `json:"hazardous_count"`
	Asteroids      []AsteroidDetail `json:"asteroids"`
}

// LargestData is the payload of get_largest.
type LargestData struct {
	Count     int              `json:"count"`
	Asteroids []AsteroidDetail `json:"asteroids"`
}

// DangerData is the payload of analyze_danger.
type DangerData struct {
	Asteroid       AsteroidDetail `json:"asteroid"`
	DangerAnalysis DangerAnalysis `json:"danger_analysis"`
}

func (a *Adapter) getToday(ctx context.Context, _ tool.Args) tool.Envelope {
	today := a.now().Format("2006-01-02")
	feed, err := a.client.Feed(ctx, today, today)
	if err != nil {
		return tool.Failf("Failed to get today's asteroids: %v", err)
	}

	asteroids := feed.Asteroids()
	hazardous := feed.Hazardous()
	data := &TodayData{
		TotalCount:     len(asteroids),
		HazardousCount: len(hazardous),
		Asteroids:      summarizeAll(asteroids),
	}
	return tool.Okf(data, "Found %d asteroids today (%d potentially hazardous)", len(asteroids), len(hazardous))
}

func (a *Adapter) getWeek(ctx context.Context, _ tool.Args) tool.Envelope {
	start, end := a.weekWindow()
	feed, err := a.client.Feed(ctx, start, end)
	if err != nil {
		return tool.Failf("Failed to get this week's asteroids: %v", err)
	}

	asteroids := feed.Asteroids()
	hazardous := feed.Hazardous()

	byDate := make(map[string][]AsteroidSummary, len(feed.NearEarthObjects))
	for date, dateAsteroids := range feed.NearEarthObjects {
		byDate[date] = summarizeAll(dateAsteroids)
	}

	data := &WeekData{
		TotalCount:     len(asteroids),
		HazardousCount: len(hazardous),
		Asteroids:      summarizeAll(asteroids),
		ByDate:         byDate,
	}
	return tool.Okf(data, "Found %d asteroids this week (%d potentially hazardous)", len(asteroids), len(hazardous))
}

func (a *Adapter) getDateRange(ctx context.Context, args tool.Args) tool.Envelope {
	startDate, ok := args.String("start_date")
	if !ok {
		return tool.Fail("Missing required parameter: start_date")
	}
	endDate, ok := args.String("end_date")
	if !ok {
		return tool.Fail("Missing required parameter: end_date")
	}
	if !tool.ValidDate(startDate) || !tool.ValidDate(endDate) {
		return tool.Fail("Dates must be in YYYY-MM-DD format")
	}

	start, _ := tool.ParseDate(startDate)
	end, _ := tool.ParseDate(endDate)
	if start.After(end) {
		return tool.Fail("Start date must be before end date")
	}
	if int(end.Sub(start).Hours()/24) > maxRangeDays {
		return tool.Fail("Date range cannot exceed 7 days")
	}

	feed, err := a.client.Feed(ctx, startDate, endDate)
	if err != nil {
		return tool.Failf("Failed to get asteroids for date range: %v", err)
	}

	asteroids := feed.Asteroids()
	data := &RangeData{
		TotalCount: len(asteroids),
		DateRange:  startDate + " to " + endDate,
		Asteroids:  summarizeAll(asteroids),
	}
	return tool.Okf(data, "Found %d asteroids from %s to %s", len(asteroids), startDate, endDate)
}

func (a *Adapter) getPotentiallyHazardous(ctx context.Context, _ tool.Args) tool.Envelope {
	start, end := a.weekWindow()
	feed, err := a.client.Feed(ctx, start, end)
	if err != nil {
		return tool.Failf("Failed to get hazardous asteroids: %v", err)
	}

	hazardous := feed.Hazardous()
	data := &HazardousData{
		HazardousCount: len(hazardous),
		Asteroids:      detailAll(hazardous),
	}

	message := "No potentially hazardous asteroids found this week"
	if len(hazardous) > 0 {
		return tool.Okf(data, "Found %d potentially hazardous asteroids this week", len(hazardous))
	}
	return tool.Ok(data, message)
}

func (a *Adapter) getLargest(ctx context.Context, args tool.Args) tool.Envelope {
	count := args.Int("count", defaultLargestCount)
	if count < minLargestCount || count > maxLargestCount {
		return tool.Failf("Count must be between %d and %d", minLargestCount, maxLargestCount)
	}

	start, end := a.weekWindow()
	feed, err := a.client.Feed(ctx, start, end)
	if err != nil {
		return tool.Failf("Failed to get largest asteroids: %v", err)
	}

	largest := Largest(feed.Asteroids(), count)
	data := &LargestData{
		Count:     len(largest),
		Asteroids: detailAll(largest),
	}
	return tool.Okf(data, "Top %d largest asteroids this week", len(largest))
}

func (a *Adapter) analyzeDanger(ctx context.Context, args tool.Args) tool.Envelope {
	asteroidID, ok := args.String("asteroid_id")
	if !ok {
		return tool.Fail("Asteroid ID cannot be empty")
	}

	asteroid, err := a.client.Lookup(ctx, asteroidID)
	if err != nil {
		return tool.Failf("Failed to analyze asteroid %s: %v", asteroidID, err)
	}

	analysis, err := AnalyzeDanger(asteroid)
	if err != nil {
		return tool.Failf("Failed to analyze asteroid %s: %v", asteroidID, err)
	}
	data := &DangerData{
		Asteroid:       Detail(asteroid),
		DangerAnalysis: analysis,
	}
	return tool.Okf(data, "Danger analysis for %s: %s", asteroid.Name, analysis.ThreatLevel)
}
