package domain

import "time"

// StatusChange is an immutable audit entry recorded for every admin-driven
// status mutation (who changed what, from which value to which, and when).
type StatusChange struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	AdminID       int64     `json:"admin_id"`
	Entity        string    `json:"entity"`
	EntityID      int64     `json:"entity_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	CreatedAt     time.Time `json:"created_at"`
}
