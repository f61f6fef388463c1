package services

import (
	"math"

	"trip-planner-service/internal/domain"
)

// partitionDays splits the selected attractions into dayCount geographically
// coherent buckets by nearest-neighbor growth seeded from the destination
// centroid. Bucket sizes stay balanced within one stop of each other.
func partitionDays(selected []ScoredAttraction, dayCount int, centroid domain.Coordinates) [][]ScoredAttraction {
	buckets := make([][]ScoredAttraction, dayCount)
	if len(selected) == 0 {
		return buckets
	}

	base := len(selected) / dayCount
	extra := len(selected) % dayCount

	remaining := make([]ScoredAttraction, len(selected))
	copy(remaining, selected)

	for day := 0; day < dayCount; day++ {
		capacity := base
		if day < extra {
			capacity++
		}
		if capacity == 0 || len(remaining) == 0 {
			continue
		}

		// Seed with the unassigned attraction nearest the centroid, then
		// grow the cluster outward from its last member.
		seed := nearestTo(remaining, centroid)
		bucket := []ScoredAttraction{remaining[seed]}
		remaining = append(remaining[:seed], remaining[seed+1:]...)

		for len(bucket) < capacity && len(remaining) > 0 {
			next := nearestTo(remaining, bucket[len(bucket)-1].Location)
			bucket = append(bucket, remaining[next])
			remaining = append(remaining[:next], remaining[next+1:]...)
		}

		buckets[day] = bucket
	}

	return buckets
}

// nearestTo returns the index of the candidate closest to from.
// Ties break on smaller attraction id for determinism.
func nearestTo(pool []ScoredAttraction, from domain.Coordinates) int {
	best := 0
	bestDist := math.MaxFloat64

	for i, a := range pool {
		d := domain.HaversineMeters(from, a.Location)
		if d < bestDist || (d == bestDist && a.ID < pool[best].ID) {
			best = i
			bestDist = d
		}
	}

	return best
}
