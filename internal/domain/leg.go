package domain

import "fmt"

// Mode is a supported transport mode for a leg.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeDriving Mode = "driving"
	ModeTransit Mode = "transit"
	ModeCycling Mode = "cycling"
)

// ParseMode validates a client-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWalking, ModeDriving, ModeTransit, ModeCycling:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
}

// Driving route strategies (provider codes).
const (
	DrivingSpeedPriority   = 0
	DrivingFeePriority     = 1
	DrivingDefault         = 32
	DrivingAvoidCongestion = 33
	DrivingNoHighway       = 35
)

// Transit route strategies (provider codes).
const (
	TransitRecommend       = 0
	TransitCheapest        = 1
	TransitFewestTransfers = 2
	TransitLeastWalking    = 3
)

// TransitSummary is the transit-specific portion of a leg: the lines ridden
// and how many transfers they imply.
type TransitSummary struct {
	Lines     []string `json:"lines"`
	Transfers int      `json:"transfers"`
}

// TransportLeg is one transportation hop between two consecutive stops.
// Legs are created by the geo-routing adapter (or estimated locally when the
// provider has no path) and are read-only afterwards.
type TransportLeg struct {
	Mode            Mode            `json:"mode"`
	FromName        string          `json:"from_location"`
	ToName          string          `json:"to_location"`
	From            Coordinates     `json:"from"`
	To              Coordinates     `json:"to"`
	DistanceMeters  int             `json:"distance_meters"`
	DurationSeconds int             `json:"duration_seconds"`
	Cost            float64         `json:"cost"`
	Polyline        string          `json:"polyline,omitempty"`
	Transit         *TransitSummary `json:"transit,omitempty"`
	// Estimated marks a straight-line fallback leg built without provider data.
	Estimated bool `json:"estimated,omitempty"`
}
