package models

import "time"

// Counter is one row of the counters table, the storage behind document
// number allocation. ScopeKey is the primary key.
type Counter struct {
	ScopeKey      string    `json:"scopeKey"`
	Seq           int64     `json:"seq"` // last value handed out, 0 = fresh scope
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
