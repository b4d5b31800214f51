package students

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateStudentRequest) (*Student, error) {
	student := Student{
		Name:        req.Name,
		Phone:       req.Phone,
		ParentPhone: req.ParentPhone,
		SchoolID:    req.SchoolID,
		Grade:       req.Grade,
		Notes:       req.Notes,
		IsActive:    true,
	}
	id, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*Student, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ParentPhone != nil {
		updates["parent_phone"] = *req.ParentPhone
	}
	if req.SchoolID != nil {
		updates["school_id"] = *req.SchoolID
	}
	if req.Grade != nil {
		updates["grade"] = *req.Grade
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Student, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListStudentsRequest) ([]Student, int, error) {
	return s.repo.List(ctx, req)
}

// Delete soft-deactivates the student. History referencing the record stays
// intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
