package storage

import (
	"context"
	"database/sql"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-errors"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
	"github.com/uptrace/bun/schema"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// MigrationsDir is where packages embed their migrations, one directory per
// dialect underneath it.
const MigrationsDir = "data/sql/migrations"

// Open builds a persistence client for cfg. The driver comes from
// cfg.GetDriver(), or from the DSN scheme when that is empty.
func Open(cfg persistence.Config) (*persistence.Client, error) {
	sqldb, dialect, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	client, err := persistence.New(cfg, sqldb, dialect)
	if err != nil {
		_ = sqldb.Close()
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to reach database").
			WithTextCode("DB_PING_FAILED").
			WithMetadata(map[string]any{"driver": Driver(cfg)})
	}

	return client, nil
}

func connect(cfg persistence.Config) (*sql.DB, schema.Dialect, error) {
	dsn := cfg.GetServer()

	switch Driver(cfg) {
	case DialectPostgres:
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), pgdialect.New(), nil
	case DialectSQLite:
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CategoryInternal, "unable to open sqlite database").
				WithTextCode("DB_OPEN_FAILED")
		}
		if strings.Contains(dsn, ":memory:") {
			sqldb.SetMaxOpenConns(1)
		}
		return sqldb, sqlitedialect.New(), nil
	default:
		return nil, nil, errors.New("unsupported database driver", errors.CategoryBadInput).
			WithTextCode("DB_DRIVER_UNSUPPORTED").
			WithMetadata(map[string]any{"driver": cfg.GetDriver()})
	}
}

// Driver resolves the dialect name for cfg
func Driver(cfg persistence.Config) string {
	switch strings.ToLower(cfg.GetDriver()) {
	case "":
		if IsPostgres(cfg.GetServer()) {
			return DialectPostgres
		}
		return DialectSQLite
	case "postgres", "postgresql", "pg":
		return DialectPostgres
	case "sqlite", "sqlite3":
		return DialectSQLite
	default:
		return cfg.GetDriver()
	}
}

// IsPostgres reports whether dsn targets Postgres
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// RegisterMigrations adds the migrations embedded in fsys under
// MigrationsDir to client. Every source must ship both dialects.
func RegisterMigrations(client *persistence.Client, name string, fsys fs.FS) error {
	root, err := fs.Sub(fsys, MigrationsDir)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to load migrations").
			WithMetadata(map[string]any{"source": name})
	}

	client.RegisterDialectMigrations(root,
		persistence.WithDialectSourceLabel(name),
		persistence.WithValidationTargets(DialectPostgres, DialectSQLite),
		persistence.WithDialectValidator(missingDialects),
	)

	return nil
}

// Migrate validates the registered sources and applies pending migrations.
// The returned group is empty when there was nothing to apply.
func Migrate(ctx context.Context, client *persistence.Client) (*migrate.MigrationGroup, error) {
	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "migration failed").
			WithMetadata(map[string]any{"dialect": client.DB().Dialect().Name().String()})
	}

	group := client.Report()
	if group == nil {
		group = new(migrate.MigrationGroup)
	}

	return group, nil
}

func missingDialects(_ context.Context, result persistence.DialectValidationResult) error {
	missing := make([]string, 0, len(result.MissingDialects))
	for dialect := range result.MissingDialects {
		missing = append(missing, dialect)
	}
	sort.Strings(missing)

	return errors.New("migrations missing for dialect", errors.CategoryInternal).
		WithTextCode("MIGRATIONS_INCOMPLETE").
		WithMetadata(map[string]any{
			"source":   result.SourceLabel,
			"dialects": missing,
		})
}
