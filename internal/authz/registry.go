package authz

import (
	"context"
	"log/slog"

	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/shared"
)

// RegistryStore defines persistence for permission records.
type RegistryStore interface {
	GetLevel(ctx context.Context, task Task) (Level, error)
	SetLevel(ctx context.Context, task Task, level Level) error
	List(ctx context.Context) ([]PermissionRecord, error)
	InsertDefault(ctx context.Context, task Task, level Level) error
}

// Registry is the durable Task -> required level mapping. It is read fresh on
// every check; staleness between requests is acceptable, staleness within a
// request is not possible.
type Registry struct {
	store  RegistryStore
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewRegistry constructs a Registry.
func NewRegistry(store RegistryStore, audit *shared.AuditLogger, logger *slog.Logger) *Registry {
	return &Registry{store: store, audit: audit, logger: logger}
}

// GetRequiredLevel returns the minimum level required for task.
// Fails with ErrTaskNotRegistered when the task is unknown.
func (r *Registry) GetRequiredLevel(ctx context.Context, task Task) (Level, error) {
	return r.store.GetLevel(ctx, task)
}

// List returns the full registry snapshot ordered by task name.
func (r *Registry) List(ctx context.Context) ([]PermissionRecord, error) {
	return r.store.List(ctx)
}

// SetRequiredLevel persists a new required level for task. The change takes
// effect for all subsequent checks; nothing is cached.
//
// permissions_view is rejected by identity, not by value: even setting it to
// its current level fails, because the task is immutable by rule.
func (r *Registry) SetRequiredLevel(ctx context.Context, actorID int64, task Task, level Level) error {
	if task == TaskPermissionsView {
		return ErrImmutableTask
	}
	if !level.Valid() {
		return ErrInvalidLevel
	}
	if err := r.store.SetLevel(ctx, task, level); err != nil {
		return err
	}
	if r.audit != nil {
		if err := r.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   "permission.set_level",
			Entity:   "permission",
			EntityID: string(task),
			Meta:     map[string]any{"level": int(level)},
		}); err != nil && r.logger != nil {
			r.logger.Warn("audit permission change", slog.Any("error", err))
		}
	}
	return nil
}

// Seed inserts the default level for every known task. Seeding is idempotent:
// existing records, including manually adjusted ones, are left untouched.
func (r *Registry) Seed(ctx context.Context) error {
	for task, level := range DefaultLevels() {
		if err := r.store.InsertDefault(ctx, task, level); err != nil {
			return err
		}
	}
	return nil
}
