package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"

	auth "github.com/goliatone/go-auth-tasks"
	"github.com/goliatone/go-auth-tasks/config"
	"github.com/goliatone/go-auth-tasks/demo"
	"github.com/goliatone/go-auth-tasks/middleware/jwtware"
	"github.com/goliatone/go-auth-tasks/storage"
	"github.com/goliatone/go-auth-tasks/task"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("unable to load config", "error", err)
	}

	if cfg.GetApp().IsDebug() {
		log.SetLevel(log.LevelDebug)
		log.Debugw("config", "values", print.MaybePrettyJSON(cfg))
	}

	client, err := OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalw("unable to prepare database", "error", err)
	}
	defer client.DB().Close()

	srv := NewApp(cfg, client.DB())

	go func() {
		if err := srv.Serve(cfg.GetApp().GetAddr()); err != nil {
			log.Errorw("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
}

// OpenDatabase connects, registers the auth and task migrations and applies
// the pending ones.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*persistence.Client, error) {
	persistence.RegisterModel((*auth.User)(nil))
	persistence.RegisterModel((*task.Task)(nil))

	client, err := storage.Open(cfg.GetPersistence())
	if err != nil {
		return nil, err
	}
	client.SetLogger(auth.NewFiberLogger("PERSISTENCE"))

	if err := storage.RegisterMigrations(client, "auth", auth.GetMigrationsFS()); err != nil {
		_ = client.DB().Close()
		return nil, err
	}

	if err := storage.RegisterMigrations(client, "task", task.GetMigrationsFS()); err != nil {
		_ = client.DB().Close()
		return nil, err
	}

	group, err := storage.Migrate(ctx, client)
	if err != nil {
		_ = client.DB().Close()
		return nil, err
	}

	if !group.IsZero() {
		log.Infow("migrated", "group", group.String())
	}

	return client, nil
}

// NewApp wires services, controllers and middleware on a fiber backed router
func NewApp(cfg *config.Config, db *bun.DB) router.Server[*fiber.App] {
	authCfg := cfg.GetAuth()
	debug := cfg.GetApp().IsDebug()
	lgr := auth.DefaultLogger()

	srv := router.NewFiberAdapter(func(*fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			AppName:      "go-auth-tasks",
			ErrorHandler: auth.HTTPErrorHandler(lgr, debug),
		})

		app.Use(requestid.New())
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		}))
		app.Use(recover.New(recover.Config{EnableStackTrace: debug}))
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.GetCORS().GetAllowOrigins(),
		}))

		return app
	})

	r := srv.Router().WithLogger(auth.NewFiberLogger("ROUTER"))

	repo := auth.NewRepositoryManager(db)
	repo.MustValidate()

	tokens := auth.NewTokenService([]byte(authCfg.GetSigningKey()), authCfg.GetIssuer(), lgr)
	auther := auth.NewAuthenticator(
		repo.Users(),
		tokens,
		auth.NewBcryptHasher(authCfg.GetBcryptCost()),
	).WithLogger(lgr)

	resolver := auth.NewSessionResolver(tokens, repo.Users()).WithLogger(lgr)

	protected := jwtware.New(jwtware.Config[*auth.User]{
		Resolver:        resolver,
		ContextKey:      authCfg.GetContextKey(),
		AuthScheme:      authCfg.GetAuthScheme(),
		ContextEnricher: auth.WithContext,
	})

	demo.RegisterRoutes(r, demo.NewController(demo.SharedData{
		Message: cfg.GetDemo().GetSharedMessage(),
	}))

	auth.RegisterAccountRoutes(r, auth.NewAccountController(
		auther,
		auth.WithAccountLogger(lgr),
		auth.WithAccountContextKey(authCfg.GetContextKey()),
		auth.WithAccountDebug(debug),
	), protected)

	task.RegisterRoutes(r, task.NewController(
		task.NewService(task.NewRepository(db), auth.NewFiberLogger("TASK")),
	))

	srv.Init()

	return srv
}
