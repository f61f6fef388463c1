package domain

// TimeWindow is a daily opening-hours constraint in minutes from midnight.
type TimeWindow struct {
	OpenMinute  int `json:"open_minute"`
	CloseMinute int `json:"close_minute"`
}

// Fits reports whether a visit of durationHours starting at startMinute
// falls entirely inside the window.
func (w TimeWindow) Fits(startMinute int, durationHours float64) bool {
	end := startMinute + int(durationHours*60)
	return startMinute >= w.OpenMinute && end <= w.CloseMinute
}

// Attraction is a candidate stop produced by an external POI search.
// The planning engine treats it as read-only input.
type Attraction struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Location   Coordinates `json:"location"`
	Category   string      `json:"category"`
	Rating     float64     `json:"rating"` // 0-5
	VisitHours float64     `json:"visit_hours"`
	Cost       float64     `json:"cost"`
	Open       *TimeWindow `json:"open,omitempty"`
}

// Lodging is a candidate hotel anchored to a central location. Read-only.
type Lodging struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Location      Coordinates `json:"location"`
	PricePerNight float64     `json:"price_per_night"`
	Reason        string      `json:"reason"`
}
