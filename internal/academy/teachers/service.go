package teachers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/shared"
)

type Service struct {
	repo   Repository
	audit  *shared.AuditLogger
	logger *slog.Logger
}

func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateTeacherRequest) (*Teacher, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	teacher := Teacher{
		Username: req.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Level:    req.Level,
		IsActive: true,
	}
	id, err := s.repo.Create(ctx, teacher, string(hash))
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*Teacher, error) {
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
	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// SetLevel changes a principal's granted level. The change is audited and
// takes effect on the teacher's next gated call; no session invalidation is
// needed because the gate never trusts the credential for the level.
func (s *Service) SetLevel(ctx context.Context, actorID, id int64, level int) (*Teacher, error) {
	if err := s.repo.SetLevel(ctx, id, level); err != nil {
		return nil, err
	}
	if s.audit != nil {
		if err := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "teacher.set_level",
			Entity:   "teacher",
			EntityID: strconv.FormatInt(id, 10),
			Meta:     map[string]any{"level": level},
		}); err != nil && s.logger != nil {
			s.logger.Warn("audit level change", slog.Any("error", err))
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Teacher, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListTeachersRequest) ([]Teacher, int, error) {
	return s.repo.List(ctx, req)
}

// Delete soft-deactivates the account; the resolver rejects it on the next
// gated call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
