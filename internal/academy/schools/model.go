package schools

import "time"

// School is an external school students attend.
type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Region    *string   `json:"region,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SchoolRequest struct {
	Name   string  `json:"name" validate:"required,max=150"`
	Region *string `json:"region,omitempty" validate:"omitempty,max=100"`
	Notes  *string `json:"notes,omitempty"`
}
