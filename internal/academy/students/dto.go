package students

type CreateStudentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	ParentPhone *string `json:"parent_phone,omitempty" validate:"omitempty,max=30"`
	SchoolID    *int64  `json:"school_id,omitempty" validate:"omitempty,gt=0"`
	Grade       int     `json:"grade" validate:"gte=0,lte=12"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	ParentPhone *string `json:"parent_phone,omitempty" validate:"omitempty,max=30"`
	SchoolID    *int64  `json:"school_id,omitempty" validate:"omitempty,gt=0"`
	Grade       *int    `json:"grade,omitempty" validate:"omitempty,gte=0,lte=12"`
	Notes       *string `json:"notes,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ListStudentsRequest struct {
	SchoolID *int64
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}
