package dto

// OccupancyPoint is one month of the occupancy trend.
type OccupancyPoint struct {
	Month     string  `json:"month"` // YYYY-MM
	Occupancy float64 `json:"occupancy"`
}

// OccupancyTrendResponse wraps the occupancy trend.
type OccupancyTrendResponse struct {
	Months []OccupancyPoint `json:"months"`
}

// StatisticsResponse is the general statistics snapshot.
type StatisticsResponse struct {
	TotalPoints   string  `json:"totalPoints"`
	OccupancyRate float64 `json:"occupancyRate"`
	FilledSeats   int     `json:"filledSeats"`
	TotalSeats    int     `json:"totalSeats"`
	TopWorker     string  `json:"topWorker,omitempty"`
}
