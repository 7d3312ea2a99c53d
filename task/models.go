package task

import (
	"time"

	"github.com/uptrace/bun"
)

// Task is the task model. A task is live while DeletedAt is nil.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:tsk"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Priority      *string    `bun:"priority" json:"priority,omitempty"`
	Description   *string    `bun:"description" json:"description,omitempty"`
	CompletedAt   *time.Time `bun:"completed_at" json:"completed_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at" json:"deleted_at,omitempty"`
	UserID        *int64     `bun:"user_id" json:"user_id,omitempty"`
	IsDefault     *bool      `bun:"is_default" json:"is_default,omitempty"`
}

// IsLive reports whether the task has not been soft deleted
func (t *Task) IsLive() bool {
	return t != nil && t.DeletedAt == nil
}

// MarkDeleted stamps the soft delete marker
func (t *Task) MarkDeleted(at time.Time) *Task {
	t.DeletedAt = &at
	return t
}
