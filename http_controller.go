package auth

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AccountRequest payload used by account creation and login
type AccountRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r AccountRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
	if err != nil {
		return errors.FromOzzoValidation(err, "invalid account payload").
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

type AccountControllerRoutes struct {
	CreateUser string
	Login      string
	Logout     string
}

// AccountController exposes the account lifecycle over HTTP
type AccountController struct {
	Debug      bool
	Logger     Logger
	Auther     *Auther
	Routes     *AccountControllerRoutes
	ContextKey string
}

type AccountControllerOption func(*AccountController) *AccountController

// WithAccountLogger sets the controller logger
func WithAccountLogger(logger Logger) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithAccountContextKey sets the locals key the bearer middleware uses
func WithAccountContextKey(key string) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		if key != "" {
			c.ContextKey = key
		}
		return c
	}
}

// WithAccountDebug toggles payload dumps
func WithAccountDebug(debug bool) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Debug = debug
		return c
	}
}

func NewAccountController(auther *Auther, opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger:     DefaultLogger(),
		Auther:     auther,
		ContextKey: "user",
		Routes: &AccountControllerRoutes{
			CreateUser: "/create_user",
			Login:      "/login",
			Logout:     "/logout",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in account controller...")
	}

	return c
}

// RegisterAccountRoutes mounts the account routes, logout runs behind protected
func RegisterAccountRoutes[T any](app router.Router[T], controller *AccountController, protected router.MiddlewareFunc) {
	app.Post(controller.Routes.CreateUser, controller.CreateUser).SetName("account.create")
	app.Post(controller.Routes.Login, controller.Login).SetName("account.login")
	app.Post(controller.Routes.Logout, controller.Logout, protected).SetName("account.logout")
}

func (a *AccountController) CreateUser(ctx router.Context) error {
	payload, err := a.bind(ctx)
	if err != nil {
		return err
	}

	user, err := a.Auther.CreateAccount(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewAccountResponse(user))
}

func (a *AccountController) Login(ctx router.Context) error {
	payload, err := a.bind(ctx)
	if err != nil {
		return err
	}

	user, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewAccountResponse(user))
}

func (a *AccountController) Logout(ctx router.Context) error {
	user, ok := GetRouterUser(ctx, a.ContextKey)
	if !ok {
		return ErrUnableToFindSession
	}

	if err := a.Auther.Logout(ctx.Context(), user); err != nil {
		return err
	}

	return ctx.SendStatus(http.StatusOK)
}

func (a *AccountController) bind(ctx router.Context) (*AccountRequest, error) {
	payload := new(AccountRequest)
	if err := ctx.Bind(payload); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to parse account payload").
			WithCode(errors.CodeBadRequest)
	}

	if a.Debug {
		// never dump the password
		a.Logger.Debug("account payload", "payload", print.MaybePrettyJSON(map[string]string{
			"username": payload.Username,
		}))
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	return payload, nil
}
