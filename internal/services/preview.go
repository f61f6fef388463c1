package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"trip-planner-service/internal/ports"
)

// DestinationPreview summarizes what a destination offers before any
// itinerary is composed.
type DestinationPreview struct {
	RecommendedDays     int     `json:"recommended_days"`
	TopAttractionsCount int     `json:"top_attractions_count"`
	AvgDailyBudget      float64 `json:"avg_daily_budget"`
	BestSeason          string  `json:"best_season"`
	Brief               string  `json:"brief"`
}

// seasonByCategory maps a dominant attraction category to a season hint.
var seasonByCategory = map[string]string{
	"history":  "autumn (September-November)",
	"museum":   "autumn (September-November)",
	"culture":  "autumn (September-November)",
	"nature":   "spring (March-May)",
	"park":     "spring (March-May)",
	"hiking":   "spring (March-May)",
	"beach":    "summer (June-August)",
	"shopping": "year-round",
	"food":     "year-round",
}

// PreviewDestination derives trip-sizing hints from the candidate pool:
// recommended day count from pool size, average daily budget from median
// costs, best season from the dominant category.
func PreviewDestination(ctx context.Context, src ports.CandidateSource, destination string) (*DestinationPreview, error) {
	pool, lodgings, err := BuildCandidates(ctx, src, destination, nil, 3, 0)
	if err != nil {
		return nil, fmt.Errorf("preview destination: %w", err)
	}

	// Roughly three stops per touring day.
	days := (len(pool) + 2) / 3
	if days < 1 {
		days = 1
	}
	if days > 7 {
		days = 7
	}

	costs := make([]float64, 0, len(pool))
	counts := map[string]int{}
	for _, a := range pool {
		costs = append(costs, a.Cost)
		counts[strings.ToLower(a.Category)]++
	}

	nightly := 0.0
	if len(lodgings) > 0 {
		prices := make([]float64, 0, len(lodgings))
		for _, l := range lodgings {
			prices = append(prices, l.PricePerNight)
		}
		nightly = median(prices)
	}

	// Three attraction visits, one night of lodging, plus the meals share.
	daily := median(costs)*3 + nightly
	daily += daily * mealsFraction
	daily = math.Round(daily)

	dominant := ""
	for cat, n := range counts {
		if n > counts[dominant] || (n == counts[dominant] && (dominant == "" || cat < dominant)) {
			dominant = cat
		}
	}
	season, ok := seasonByCategory[dominant]
	if !ok {
		season = "spring and autumn"
	}

	brief := fmt.Sprintf(
		"%s offers %d notable attractions, led by %s spots. A %d-day visit at roughly %.0f per day covers the highlights.",
		destination, len(pool), dominant, days, daily,
	)

	return &DestinationPreview{
		RecommendedDays:     days,
		TopAttractionsCount: len(pool),
		AvgDailyBudget:      daily,
		BestSeason:          season,
		Brief:               brief,
	}, nil
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
