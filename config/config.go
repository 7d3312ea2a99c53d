package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config is the process configuration read from the environment
type Config struct {
	App         App         `json:"app"`
	Persistence Persistence `json:"persistence"`
	Auth        Auth        `json:"auth"`
	CORS        CORS        `json:"cors"`
	Demo        Demo        `json:"demo"`
}

type App struct {
	Addr  string `env:"APP_ADDR" envDefault:"0.0.0.0:3000" json:"addr"`
	Debug bool   `env:"APP_DEBUG" json:"debug"`
}

// Persistence satisfies persistence.Config
type Persistence struct {
	DSN               string        `env:"DATABASE_URL" json:"dsn"`
	Driver            string        `env:"DATABASE_DRIVER" json:"driver"`
	Debug             bool          `env:"DATABASE_DEBUG" json:"debug"`
	PingTimeout       time.Duration `env:"DATABASE_PING_TIMEOUT" envDefault:"5s" json:"ping_timeout"`
	OtelIdentifier    string        `env:"DATABASE_OTEL_ID" json:"otel_identifier"`
	MigrationsEnabled bool          `env:"DATABASE_MIGRATIONS" envDefault:"true" json:"migrations_enabled"`
}

// Auth satisfies auth.Config
type Auth struct {
	SigningKey string `env:"JWT_SECRET" json:"-"`
	Issuer     string `env:"JWT_ISSUER" envDefault:"go-auth-tasks" json:"issuer"`
	AuthScheme string `env:"AUTH_SCHEME" envDefault:"Bearer" json:"auth_scheme"`
	ContextKey string `env:"AUTH_CONTEXT_KEY" envDefault:"user" json:"context_key"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"8" json:"bcrypt_cost"`
}

type CORS struct {
	AllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" json:"allow_origins"`
}

type Demo struct {
	SharedMessage string `env:"SHARED_MESSAGE" envDefault:"hello data" json:"shared_message"`
}

// Load reads the optional .env files and then the process environment
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "unable to read env file").
				WithMetadata(map[string]any{"file": file})
		}
	}

	return parse(env.Options{})
}

// FromMap builds a Config from the given environment only
func FromMap(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate will run validation rules
func (c *Config) Validate() error {
	err := validation.Errors{
		"APP_ADDR":     validation.Validate(c.App.Addr, validation.Required),
		"DATABASE_URL": validation.Validate(c.Persistence.DSN, validation.Required),
		"DATABASE_DRIVER": validation.Validate(c.Persistence.Driver,
			validation.In("sqlite", "sqlite3", "postgres", "postgresql", "pg"),
		),
		"DATABASE_PING_TIMEOUT": validation.Validate(c.Persistence.PingTimeout,
			validation.Required,
			validation.Min(time.Millisecond),
		),
		"JWT_SECRET":       validation.Validate(c.Auth.SigningKey, validation.Required),
		"AUTH_SCHEME":      validation.Validate(c.Auth.AuthScheme, validation.Required),
		"AUTH_CONTEXT_KEY": validation.Validate(c.Auth.ContextKey, validation.Required),
		"BCRYPT_COST": validation.Validate(c.Auth.BcryptCost,
			validation.Min(bcrypt.MinCost),
			validation.Max(bcrypt.MaxCost),
		),
	}.Filter()

	if err == nil {
		return nil
	}

	return errors.FromOzzoValidation(err, "invalid configuration")
}

func (c *Config) GetApp() App                 { return c.App }
func (c *Config) GetPersistence() Persistence { return c.Persistence }
func (c *Config) GetAuth() Auth               { return c.Auth }
func (c *Config) GetCORS() CORS               { return c.CORS }
func (c *Config) GetDemo() Demo               { return c.Demo }

func (a App) GetAddr() string { return a.Addr }
func (a App) IsDebug() bool   { return a.Debug }

func (p Persistence) GetDebug() bool                { return p.Debug }
func (p Persistence) GetDriver() string             { return p.Driver }
func (p Persistence) GetServer() string             { return p.DSN }
func (p Persistence) GetPingTimeout() time.Duration { return p.PingTimeout }
func (p Persistence) GetOtelIdentifier() string     { return p.OtelIdentifier }
func (p Persistence) GetMigrationsEnabled() bool    { return p.MigrationsEnabled }

func (a Auth) GetSigningKey() string { return a.SigningKey }
func (a Auth) GetIssuer() string     { return a.Issuer }
func (a Auth) GetAuthScheme() string { return a.AuthScheme }
func (a Auth) GetContextKey() string { return a.ContextKey }
func (a Auth) GetBcryptCost() int    { return a.BcryptCost }

// GetAllowOrigins returns the origins in the comma separated form fiber's
// cors middleware expects
func (c CORS) GetAllowOrigins() string {
	return strings.ReplaceAll(c.AllowOrigins, " ", "")
}

func (d Demo) GetSharedMessage() string { return d.SharedMessage }
