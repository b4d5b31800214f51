package students

import "time"

// Student is an enrolled student record. Students are soft-deactivated on
// delete so attendance and homework history stays attributable.
type Student struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone,omitempty"`
	ParentPhone *string   `json:"parent_phone,omitempty"`
	SchoolID    *int64    `json:"school_id,omitempty"`
	Grade       int       `json:"grade"`
	Notes       *string   `json:"notes,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
