package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Users is the session store. It owns every read and write of the users
// table during authentication.
type Users interface {
	SessionStore

	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	SetTokenTx(ctx context.Context, tx bun.IDB, id int64, token *string) error
}

type users struct {
	db  *bun.DB
	txm repository.TransactionManager
}

var _ Users = (*users)(nil)

// NewUsersRepository returns a bun backed Users store
func NewUsersRepository(db *bun.DB) Users {
	return newUsers(db, db)
}

func newUsers(db *bun.DB, txm repository.TransactionManager) *users {
	return &users{db: db, txm: txm}
}

func (a *users) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	return a.findOne(ctx, tx, ErrIdentityNotFound, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
}

func (a *users) GetByToken(ctx context.Context, token string) (*User, error) {
	return a.GetByTokenTx(ctx, a.db, token)
}

func (a *users) GetByTokenTx(ctx context.Context, tx bun.IDB, token string) (*User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	return a.findOne(ctx, tx, ErrSessionNotFound, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.token = ?", token)
	})
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	return a.findOne(ctx, tx, ErrIdentityNotFound, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.username = ?", username)
	})
}

func (a *users) Create(ctx context.Context, user *User) (*User, error) {
	return a.CreateTx(ctx, a.db, user)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	now := time.Now()
	user.CreatedAt = &now
	user.UpdatedAt = &now

	if _, err := tx.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return nil, errors.Wrap(err, ErrUsernameTaken.Category, ErrUsernameTaken.Message).
				WithCode(ErrUsernameTaken.Code).
				WithTextCode(ErrUsernameTaken.TextCode).
				WithMetadata(map[string]any{"username": user.Username})
		}
		return nil, internal(err, "could not create user")
	}

	return user, nil
}

func (a *users) SetToken(ctx context.Context, id int64, token *string) error {
	return a.SetTokenTx(ctx, a.db, id, token)
}

// SetTokenTx overwrites the stored token unconditionally, a nil token logs
// the user out. Concurrent writers race, the last write wins.
func (a *users) SetTokenTx(ctx context.Context, tx bun.IDB, id int64, token *string) error {
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("token = ?", token).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return internal(err, "could not update user token")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrIdentityNotFound.Clone().
			WithMetadata(map[string]any{
				"id": id,
			})
	}

	return nil
}

// ClearToken logs id out only while current is still its stored token, so a
// newer login that raced the logout keeps its session.
func (a *users) ClearToken(ctx context.Context, id int64, current string) error {
	return a.txm.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := a.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if user.Token == nil || *user.Token != current {
			return ErrSessionNotFound.Clone().
				WithMetadata(map[string]any{
					"id": id,
				})
		}

		return a.SetTokenTx(ctx, tx, id, nil)
	})
}

func (a *users) findOne(ctx context.Context, tx bun.IDB, notFound error, criteria ...repository.SelectCriteria) (*User, error) {
	record := &User{}
	q := tx.NewSelect().Model(record)

	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, internal(err, "could not load user")
	}

	return record, nil
}
