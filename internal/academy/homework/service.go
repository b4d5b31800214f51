package homework

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

// Create records a new assignment attributed to the posting teacher.
func (s *Service) Create(ctx context.Context, teacherID int64, req CreateAssignmentRequest) (*Assignment, error) {
	a := Assignment{
		SubjectID: req.SubjectID,
		TeacherID: teacherID,
		Title:     req.Title,
		Body:      req.Body,
		DueDate:   req.DueDate,
	}
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAssignmentRequest) (*Assignment, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.SubjectID != nil {
		updates["subject_id"] = *req.SubjectID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Assignment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListAssignmentsRequest) ([]Assignment, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
