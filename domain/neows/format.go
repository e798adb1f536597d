package neows

// DiameterKm is the estimated diameter range in kilometers.
type DiameterKm struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ApproachSummary is the closest-approach slice of an asteroid summary.
type ApproachSummary struct {
	Date        string  `json:"date"`
	DistanceKm  float64 `json:"distance_km"`
	VelocityKmh float64 `json:"velocity_kmh"`
}

// ApproachDetail is one close-approach event in detailed formatting.
type ApproachDetail struct {
	Date          string  `json:"date"`
	DistanceKm    float64 `json:"distance_km"`
	DistanceLunar float64 `json:"distance_lunar"`
	VelocityKmh   float64 `json:"velocity_kmh"`
}

// AsteroidSummary is the compact representation used in feed listings.
type AsteroidSummary struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	IsHazardous     bool             `json:"is_hazardous"`
	DiameterKm      DiameterKm       `json:"diameter_km"`
	ClosestApproach *ApproachSummary `json:"closest_approach"`
}

// AsteroidDetail extends the summary with magnitude, size comparison and the
// full approach list.
type AsteroidDetail struct {
	AsteroidSummary
	AbsoluteMagnitude float64          `json:"absolute_magnitude"`
	NasaJplURL        string           `json:"nasa_jpl_url"`
	SizeComparison    string           `json:"size_comparison"`
	AllApproaches     []ApproachDetail `json:"all_approaches"`
}

// Summarize formats an asteroid for listing display.
func Summarize(ast *Asteroid) AsteroidSummary {
	summary := AsteroidSummary{
		ID:          ast.ID,
		Name:        ast.Name,
		IsHazardous: ast.IsPotentiallyHazardous,
		DiameterKm: DiameterKm{
			Min: ast.EstimatedDiameter.Kilometers.Min,
			Max: ast.EstimatedDiameter.Kilometers.Max,
		},
	}
	if closest := ast.ClosestApproach(); closest != nil {
		summary.ClosestApproach = &ApproachSummary{
			Date:        closest.Date,
			DistanceKm:  closest.DistanceKm(),
			VelocityKmh: closest.VelocityKmh(),
		}
	}
	return summary
}

// Detail formats an asteroid for detailed display.
func Detail(ast *Asteroid) AsteroidDetail {
	approaches := make([]ApproachDetail, 0, len(ast.CloseApproachData))
	for i := range ast.CloseApproachData {
		approach := &ast.CloseApproachData[i]
		approaches = append(approaches, ApproachDetail{
			Date:          approach.Date,
			DistanceKm:    approach.DistanceKm(),
			DistanceLunar: approach.DistanceLunar(),
			VelocityKmh:   approach.VelocityKmh(),
		})
	}

	return AsteroidDetail{
		AsteroidSummary:   Summarize(ast),
		AbsoluteMagnitude: ast.AbsoluteMagnitudeH,
		NasaJplURL:        ast.NasaJplURL,
		SizeComparison:    SizeComparison(ast.MaxDiameterKm()),
		AllApproaches:     approaches,
	}
}

func summarizeAll(asteroids []Asteroid) []AsteroidSummary {
	out := make([]AsteroidSummary, 0, len(asteroids))
	for i := range asteroids {
		out = append(out, Summarize(&asteroids[i]))
	}
	return out
}

func detailAll(asteroids []Asteroid) []AsteroidDetail {
	out := make([]AsteroidDetail, 0, len(asteroids))
	for i := range asteroids {
		out = append(out, Detail(&asteroids[i]))
	}
	return out
}
