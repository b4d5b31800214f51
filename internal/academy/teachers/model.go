package teachers

import "time"

// Teacher is a staff account. Teachers double as the system's principals:
// the level stored here is what the authorization gate reads on every check.
// The password hash never leaves the repository layer.
type Teacher struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Level     int       `json:"level"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
