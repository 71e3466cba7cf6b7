package dto

// ReserveSequenceRequest reserves a contiguous block of sequence numbers for
// an external consumer such as a batch import.
type ReserveSequenceRequest struct {
	ScopeKey string `json:"scopeKey" binding:"required"`
	Count    int64  `json:"count" binding:"required,min=1"`
}

// SequenceRangeResponse is the reserved inclusive range.
type SequenceRangeResponse struct {
	ScopeKey string `json:"scopeKey"`
	First    int64  `json:"first"`
	Last     int64  `json:"last"`
}
