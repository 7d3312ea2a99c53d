package task

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Repository persists tasks. Get and List only see live tasks, GetAny is
// used by the write paths and ignores the soft delete marker.
type Repository interface {
	Create(ctx context.Context, record *Task) (*Task, error)
	Get(ctx context.Context, id int64) (*Task, error)
	GetAny(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Task, error)
	Replace(ctx context.Context, record *Task) (*Task, error)
	UpdateColumns(ctx context.Context, record *Task, columns ...string) (*Task, error)
	Delete(ctx context.Context, id int64) error
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx Repository) error) error
}

type tasks struct {
	db bun.IDB
}

var _ Repository = (*tasks)(nil)

// NewRepository returns a bun backed task repository
func NewRepository(db bun.IDB) Repository {
	return &tasks{db: db}
}

// NotDeleted restricts a query to live tasks
func NotDeleted() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.deleted_at IS NULL")
	}
}

// ByPriority applies the tri-state priority filter
func ByPriority(f PriorityFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		switch {
		case !f.Present:
			return q
		case f.Value == "":
			return q.Where("?TableAlias.priority IS NULL")
		default:
			return q.Where("?TableAlias.priority = ?", f.Value)
		}
	}
}

func (r *tasks) Create(ctx context.Context, record *Task) (*Task, error) {
	if _, err := r.db.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		return nil, internal(err, "could not create task")
	}
	return record, nil
}

func (r *tasks) Get(ctx context.Context, id int64) (*Task, error) {
	return r.findOne(ctx, id, NotDeleted())
}

func (r *tasks) GetAny(ctx context.Context, id int64) (*Task, error) {
	return r.findOne(ctx, id)
}

func (r *tasks) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Task, error) {
	records := make([]*Task, 0)
	q := r.db.NewSelect().Model(&records).Apply(NotDeleted())

	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Order("id ASC").Scan(ctx); err != nil {
		return nil, internal(err, "could not list tasks")
	}

	return records, nil
}

// Replace writes every mutable column of record
func (r *tasks) Replace(ctx context.Context, record *Task) (*Task, error) {
	res, err := r.db.NewUpdate().
		Model(record).
		ExcludeColumn("id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, internal(err, "could not replace task")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, notFound(record.ID)
	}

	return record, nil
}

// UpdateColumns writes only the listed columns of record
func (r *tasks) UpdateColumns(ctx context.Context, record *Task, columns ...string) (*Task, error) {
	if len(columns) == 0 {
		return record, nil
	}

	res, err := r.db.NewUpdate().
		Model(record).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, internal(err, "could not update task")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, notFound(record.ID)
	}

	return record, nil
}

// Delete removes the row whatever its soft delete state is
func (r *tasks) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.NewDelete().
		Model((*Task)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return internal(err, "could not delete task")
	}
	return nil
}

func (r *tasks) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx Repository) error) error {
	return r.db.RunInTx(ctx, opts, func(ctx context.Context, tx bun.Tx) error {
		return f(ctx, &tasks{db: tx})
	})
}

func (r *tasks) findOne(ctx context.Context, id int64, criteria ...repository.SelectCriteria) (*Task, error) {
	record := &Task{}
	q := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id)

	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, internal(err, "could not load task")
	}

	return record, nil
}
