package domain

import "time"

// Counter is a named, monotonically increasing sequence shared by all
// documents of one numbering series. It is created on first use and mutated
// only by atomic increments (or compensating decrements after a failed
// document creation).
type Counter struct {
	ScopeKey      string    `json:"scopeKey"` // e.g. "salesOrderCode", "GJ", "LJ_MM01"
	Seq           int64     `json:"seq"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SequenceRange is a contiguous block of allocated sequence values.
type SequenceRange struct {
	First int64 `json:"first"`
	Last  int64 `json:"last"`
}

// Count returns the number of values in the range.
func (r SequenceRange) Count() int64 {
	return r.Last - r.First + 1
}
