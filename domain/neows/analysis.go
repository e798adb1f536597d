package neows

import (
	"errors"
	"fmt"
	"sort"
)

// ThreatLevel classifies an asteroid by hazard flag and closest-approach
// distance.
type ThreatLevel string

const (
	ThreatMinimal  ThreatLevel = "MINIMAL"
	ThreatLow      ThreatLevel = "LOW"
	ThreatModerate ThreatLevel = "MODERATE"
	ThreatHigh     ThreatLevel = "HIGH"
)

// Distance bands for hazardous asteroids, in kilometers.
const (
	highThreatDistanceKm     = 1_000_000
	moderateThreatDistanceKm = 5_000_000
)

// ClassifyThreat maps (hazard flag, closest distance) to a threat level.
// Non-hazardous asteroids are MINIMAL regardless of distance.
func ClassifyThreat(isHazardous bool, closestDistanceKm float64) ThreatLevel {
	if !isHazardous {
		return ThreatMinimal
	}
	switch {
	case closestDistanceKm < highThreatDistanceKm:
		return ThreatHigh
	case closestDistanceKm < moderateThreatDistanceKm:
		return ThreatModerate
	default:
		return ThreatLow
	}
}

// SizeCategory buckets an asteroid by its maximum estimated diameter in km.
func SizeCategory(maxDiameterKm float64) string {
	switch {
	case maxDiameterKm > 1.0:
		return "Very Large"
	case maxDiameterKm > 0.5:
		return "Large"
	case maxDiameterKm > 0.1:
		return "Medium"
	default:
		return "Small"
	}
}

// SizeComparison renders a human-friendly size sentence. Buckets are
// mutually exclusive, evaluated in descending threshold order.
func SizeComparison(maxDiameterKm float64) string {
	diameterM := maxDiameterKm * 1000
	switch {
	case diameterM > 1000:
		return fmt.Sprintf("About %.1f km - larger than most cities", maxDiameterKm)
	case diameterM > 500:
		return fmt.Sprintf("About %.0fm - size of a large skyscraper", diameterM)
	case diameterM > 100:
		return fmt.Sprintf("About %.0fm - size of a football field", diameterM)
	case diameterM > 50:
		return fmt.Sprintf("About %.0fm - size of a large building", diameterM)
	case diameterM > 10:
		return fmt.Sprintf("About %.0fm - size of a house", diameterM)
	default:
		return fmt.Sprintf("About %.0fm - size of a car", diameterM)
	}
}

// DangerAnalysis is the derived threat assessment for one asteroid.
type DangerAnalysis struct {
	ThreatLevel            ThreatLevel `json:"threat_level"`
	IsPotentiallyHazardous bool        `json:"is_potentially_hazardous"`
	SizeCategory           string      `json:"size_category"`
	ClosestDistanceKm      float64     `json:"closest_distance_km"`
	ClosestDistanceLunar   float64     `json:"closest_distance_lunar"`
	ImpactPotential        string      `json:"impact_potential"`
	MonitoringPriority     string      `json:"monitoring_priority"`
}

// AnalyzeDanger computes the full danger assessment for one asteroid. An
// asteroid without close-approach data cannot be assessed; the envelope must
// stay JSON-serializable, so no infinity sentinel stands in for a distance.
func AnalyzeDanger(ast *Asteroid) (DangerAnalysis, error) {
	closest := ast.ClosestApproach()
	if closest == nil {
		return DangerAnalysis{}, errors.New("no close approach data available")
	}
	distanceKm := closest.DistanceKm()
	distanceLunar := closest.DistanceLunar()

	level := ClassifyThreat(ast.IsPotentiallyHazardous, distanceKm)

	priority := "Standard"
	if level == ThreatHigh || level == ThreatModerate {
		priority = "High"
	}

	return DangerAnalysis{
		ThreatLevel:            level,
		IsPotentiallyHazardous: ast.IsPotentiallyHazardous,
		SizeCategory:           SizeCategory(ast.MaxDiameterKm()),
		ClosestDistanceKm:      distanceKm,
		ClosestDistanceLunar:   distanceLunar,
		ImpactPotential:        "None - will miss Earth safely",
		MonitoringPriority:     priority,
	}, nil
}

// Largest returns the count largest asteroids by max estimated diameter,
// descending. The sort is stable so ties keep their feed order.
func Largest(asteroids []Asteroid, count int) []Asteroid {
	sorted := make([]Asteroid, len(asteroids))
	copy(sorted, asteroids)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxDiameterKm() > sorted[j].MaxDiameterKm()
	})
	if count < len(sorted) {
		sorted = sorted[:count]
	}
	return sorted
}
