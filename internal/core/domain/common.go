package domain

import "time"

// SystemUserID is the actor recorded when no authenticated identity is present.
const SystemUserID = "system"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor reference (opaque string)
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Actor is the authenticated identity attached to every mutating call.
// Elevated actors may use the administrative escape transitions.
type Actor struct {
	UserID   string `json:"userID"`
	Elevated bool   `json:"elevated"`
}

// SystemActor returns the fallback identity used when auth middleware
// supplied no user.
func SystemActor() Actor {
	return Actor{UserID: SystemUserID}
}
