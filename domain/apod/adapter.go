package apod

import (
	"context"

	"github.com/rs/zerolog/log"

	"nasa-server/services/space-tools/domain/tool"
)

const (
	sourceID = "apod"

	// NASA caps APOD range queries at 100 days.
	maxRangeDays = 100
)

// operation binds one catalog entry to its handler. Validation happens
// inside the handler before any client call.
type operation struct {
	descriptor tool.Descriptor
	run        func(ctx context.Context, args tool.Args) tool.Envelope
}

// Adapter exposes NASA's Astronomy Picture of the Day API as tool
// operations.
type Adapter struct {
	client Client
	ops    []operation
	byName map[string]*operation
}

var _ tool.Adapter = (*Adapter)(nil)

// NewAdapter creates the APOD adapter.
func NewAdapter(client Client) *Adapter {
	a := &Adapter{client: client}

	a.ops = []operation{
		{
			descriptor: tool.Descriptor{
				Name:        "get_today",
				Description: "Get today's Astronomy Picture of the Day",
				Parameters:  tool.ObjectSchema(map[string]tool.Property{}),
			},
			run: a.getToday,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_by_date",
				Description: "Get the Astronomy Picture of the Day for a specific date",
				Parameters: tool.ObjectSchema(map[string]tool.Property{
					"date": {
						Type:        "string",
						Description: "Date in YYYY-MM-DD format",
						Pattern:     `^\d{4}-\d{2}-\d{2}$`,
					},
				}, "date"),
			},
			run: a.getByDate,
		},
		{
			descriptor: tool.Descriptor{
				Name:        "get_date_range",
				Description: "Get Astronomy Pictures of the Day for a date range (max 100 days)",
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
	return "Access NASA's Astronomy Picture of the Day data"
}

// Operations returns the static operation catalog in declaration order.
func (a *Adapter) Operations() []tool.Descriptor {
	descriptors := make([]tool.Descriptor, 0, len(a.ops))
	for _, op := range a.ops {
		descriptors = append(descriptors, op.descriptor)
	}
	return descriptors
}

// Execute runs one named operation. Every failure surfaces inside the
// envelope, never as a Go error.
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

func (a *Adapter) getToday(ctx context.Context, _ tool.Args) tool.Envelope {
	picture, err := a.client.Today(ctx)
	if err != nil {
		return tool.Failf("Failed to get today's astronomy picture: %v", err)
	}
	return tool.Ok(picture, "Today's astronomy picture: "+picture.Title)
}

func (a *Adapter) getByDate(ctx context.Context, args tool.Args) tool.Envelope {
	date, ok := args.String("date")
	if !ok {
		return tool.Fail("Missing required parameter: date")
	}
	if !tool.ValidDate(date) {
		return tool.Fail("Date must be in YYYY-MM-DD format")
	}

	picture, err := a.client.ByDate(ctx, date)
	if err != nil {
		return tool.Failf("Failed to get astronomy picture for %s: %v", date, err)
	}
	return tool.Ok(picture, "Astronomy picture for "+date+": "+picture.Title)
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
		return tool.Fail("Date range cannot exceed 100 days")
	}

	entries, err := a.client.DateRange(ctx, startDate, endDate)
	if err != nil {
		return tool.Failf("Failed to get astronomy pictures from %s to %s: %v", startDate, endDate, err)
	}

	data := &RangeData{
		StartDate: startDate,
		EndDate:   endDate,
		Count:     len(entries),
		Entries:   entries,
	}
	return tool.Okf(data, "Found %d astronomy pictures from %s to %s", len(entries), startDate, endDate)
}
