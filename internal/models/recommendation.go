package models

// Ranking orders a scored cohort and names the recommended itinerary.
type Ranking struct {
	Recommended string      `json:"recommended" yaml:"recommended"`
	Total       int         `json:"total" yaml:"total"`
	Reason      string      `json:"reason" yaml:"reason"`
	MarginPct   float64     `json:"marginPct" yaml:"marginPct"`
	Entries     []RankEntry `json:"entries" yaml:"entries"`
}

// RankEntry holds the total, breakdown and rank for a single itinerary.
type RankEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Rank      int       `json:"rank" yaml:"rank"`
	Total     int       `json:"total" yaml:"total"`
	Breakdown Breakdown `json:"breakdown" yaml:"breakdown"`
}
