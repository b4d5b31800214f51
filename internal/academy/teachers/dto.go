package teachers

type CreateTeacherRequest struct {
	Username string  `json:"username" validate:"required,max=100,alphanum"`
	Name     string  `json:"name" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Level    int     `json:"level" validate:"gte=0,lte=3"`
}

type UpdateTeacherRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

type SetLevelRequest struct {
	Level *int `json:"level" validate:"required,gte=0,lte=3"`
}

type ListTeachersRequest struct {
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}
