package attendance

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Create(ctx context.Context, recordedBy int64, req CreateEntryRequest) (*Entry, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	entry := Entry{
		StudentID:  req.StudentID,
		Date:       date,
		Status:     req.Status,
		Note:       req.Note,
		RecordedBy: recordedBy,
	}
	id, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEntryRequest) (*Entry, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	s.invalidate(ctx)
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListEntriesRequest) ([]Entry, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Summary returns per-school counts for the date, served from cache when
// warm. Concurrent misses for the same date collapse into one query.
func (s *Service) Summary(ctx context.Context, date time.Time) ([]SummaryRow, error) {
	day := date.Format("2006-01-02")
	key, err := s.cache.BuildKey(ctx, "attendance", "summary", day)
	if err != nil {
		// Redis trouble must not break the dashboard.
		return s.repo.Summary(ctx, date)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		var rows []SummaryRow
		err := s.cache.FetchJSON(ctx, key, &rows, func(ctx context.Context) (any, error) {
			return s.repo.Summary(ctx, date)
		})
		if err != nil {
			return s.repo.Summary(ctx, date)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]SummaryRow), nil
}

func (s *Service) invalidate(ctx context.Context) {
	// Best effort; stale summaries expire with the TTL anyway.
	_ = s.cache.Bump(ctx)
}
