package task

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Logger is the logging contract used by the task service
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Service is the task update engine. It keeps full replacement, tri-state
// partial updates, soft delete and hard delete as separate operations.
//
// No optimistic concurrency token is used: two writers updating the same row
// race and the last write wins at row granularity.
type Service struct {
	repo   Repository
	logger Logger
	now    func() time.Time
}

// NewService returns a task service
func NewService(repo Repository, logger Logger) *Service {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create stores a new task from title, priority and description
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, req.ToTask())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task created", "id", record.ID)

	return record, nil
}

// Get returns a live task
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	return s.repo.Get(ctx, id)
}

// List returns live tasks matching the priority filter
func (s *Service) List(ctx context.Context, filter PriorityFilter) ([]*Task, error) {
	return s.repo.List(ctx, ByPriority(filter))
}

// ReplaceAtomic overwrites every mutable field. Optional fields missing from
// the request are cleared.
func (s *Service) ReplaceAtomic(ctx context.Context, id int64, req ReplaceRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.Replace(ctx, req.ToTask(id))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task replaced", "id", id)

	return record, nil
}

// PartialUpdate loads the row, merges the specified fields and writes only
// those columns.
func (s *Service) PartialUpdate(ctx context.Context, id int64, patch Patch) (*Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *Task
	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx Repository) error {
		record, err := tx.GetAny(ctx, id)
		if err != nil {
			return err
		}

		columns := patch.ApplyTo(record)
		if updated, err = tx.UpdateColumns(ctx, record, columns...); err != nil {
			return err
		}

		s.logger.Debug("task patched", "id", id, "columns", columns)
		return nil
	})

	if err != nil {
		return nil, asRichError(err, "task partial update failed")
	}

	return updated, nil
}

// SoftDelete stamps deleted_at with the current time. Calling it again on a
// deleted task only refreshes the timestamp.
func (s *Service) SoftDelete(ctx context.Context, id int64) (*Task, error) {
	var updated *Task
	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx Repository) error {
		record, err := tx.GetAny(ctx, id)
		if err != nil {
			return err
		}

		record.MarkDeleted(s.now())

		updated, err = tx.UpdateColumns(ctx, record, "deleted_at")
		return err
	})

	if err != nil {
		return nil, asRichError(err, "task soft delete failed")
	}

	s.logger.Debug("task soft deleted", "id", id)

	return updated, nil
}

// HardDelete removes the row by id without looking at deleted_at
func (s *Service) HardDelete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", "id", id)

	return nil
}

func asRichError(err error, msg string) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr
	}
	return internal(err, msg)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
