package models

import "time"

// MRequestRecord is one row of the request journal. Outcomes only;
// upstream data and computed analytics are never persisted.
type MRequestRecord struct {
	Symbol      string
	RequestedAt time.Time
	Status      int
	DurationMs  float64
	Expirations int
}
