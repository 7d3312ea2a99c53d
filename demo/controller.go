package demo

import (
	"net/http"
	"strconv"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// SharedData is static state injected at start up and read by handlers
type SharedData struct {
	Message string
}

type ControllerRoutes struct {
	Hello            string
	MirrorBodyString string
	MirrorBodyJSON   string
	PathVariables    string
	QueryParams      string
	Headers          string
	SharedMessage    string
	CustomHeader     string
	AlwaysErrors     string
	Return201        string
	GetJSON          string
	ValidateData     string
}

// Controller serves the demo endpoints
type Controller struct {
	Shared     SharedData
	Routes     *ControllerRoutes
	HeaderName string
}

type Option func(*Controller)

func WithHeaderName(name string) Option {
	return func(c *Controller) {
		c.HeaderName = name
	}
}

func NewController(shared SharedData, opts ...Option) *Controller {
	c := &Controller{
		Shared:     shared,
		HeaderName: "msg",
		Routes: &ControllerRoutes{
			Hello:            "/",
			MirrorBodyString: "/mirror_body_string",
			MirrorBodyJSON:   "/mirror_body_json",
			PathVariables:    "/path_variables/:id",
			QueryParams:      "/query_params",
			Headers:          "/headers",
			SharedMessage:    "/mw_msg",
			CustomHeader:     "/mw_custom_header",
			AlwaysErrors:     "/always_errors",
			Return201:        "/return_201",
			GetJSON:          "/get_json",
			ValidateData:     "/validate_data",
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func RegisterRoutes[T any](app router.Router[T], controller *Controller) {
	app.Get(controller.Routes.Hello, controller.Hello).SetName("demo.hello")
	app.Post(controller.Routes.MirrorBodyString, controller.MirrorBodyString).SetName("demo.mirror_body_string")
	app.Post(controller.Routes.MirrorBodyJSON, controller.MirrorBodyJSON).SetName("demo.mirror_body_json")
	app.Post(controller.Routes.PathVariables, controller.PathVariables).SetName("demo.path_variables")
	app.Get(controller.Routes.QueryParams, controller.QueryParams).SetName("demo.query_params")
	app.Get(controller.Routes.Headers, controller.Headers).SetName("demo.headers")
	app.Get(controller.Routes.SharedMessage, controller.SharedMessage).SetName("demo.mw_msg")
	app.Get(
		controller.Routes.CustomHeader,
		controller.CustomHeaderMessage,
		CustomHeader(controller.HeaderName),
	).SetName("demo.mw_custom_header")
	app.Get(controller.Routes.AlwaysErrors, controller.AlwaysErrors).SetName("demo.always_errors")
	app.Get(controller.Routes.Return201, controller.Return201).SetName("demo.return_201")
	app.Get(controller.Routes.GetJSON, controller.GetJSON).SetName("demo.get_json")
	app.Get(controller.Routes.ValidateData, controller.ValidateData).SetName("demo.validate_data")
}

func (h *Controller) Hello(ctx router.Context) error {
	return ctx.SendString("Hello World from my own file")
}

func (h *Controller) MirrorBodyString(ctx router.Context) error {
	return ctx.Send(ctx.Body())
}

type MirrorRequest struct {
	Message string `json:"message"`
}

type MirrorResponse struct {
	Message   string `json:"message"`
	ServerMsg string `json:"server_msg"`
}

func (h *Controller) MirrorBodyJSON(ctx router.Context) error {
	payload := new(MirrorRequest)
	if err := ctx.Bind(payload); err != nil {
		return badInput(err, "invalid mirror payload")
	}

	return ctx.JSON(http.StatusOK, MirrorResponse{
		Message:   payload.Message,
		ServerMsg: "server",
	})
}

func (h *Controller) PathVariables(ctx router.Context) error {
	raw := ctx.Param("id")
	if _, err := strconv.ParseUint(raw, 10, 64); err != nil {
		return errors.New("id must be an unsigned integer", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"id": raw})
	}
	return ctx.SendString(raw)
}

type QueryItems struct {
	Message string `json:"message"`
	ID      uint64 `json:"id"`
}

func (h *Controller) QueryParams(ctx router.Context) error {
	items := QueryItems{Message: ctx.Query("message")}
	if raw := ctx.Query("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return badInput(err, "invalid query parameters")
		}
		items.ID = id
	}
	return ctx.JSON(http.StatusOK, items)
}

func (h *Controller) Headers(ctx router.Context) error {
	return ctx.SendString(ctx.Header("User-Agent"))
}

func (h *Controller) SharedMessage(ctx router.Context) error {
	return ctx.SendString(h.Shared.Message)
}

func (h *Controller) CustomHeaderMessage(ctx router.Context) error {
	msg, _ := ctx.Locals(headerMessageKey).(string)
	return ctx.SendString(msg)
}

func (h *Controller) AlwaysErrors(ctx router.Context) error {
	return errors.New(http.StatusText(http.StatusTeapot), errors.HTTPStatusToCategory(http.StatusTeapot)).
		WithCode(http.StatusTeapot).
		WithTextCode(errors.HTTPStatusToTextCode(http.StatusTeapot))
}

func (h *Controller) Return201(ctx router.Context) error {
	return ctx.Status(http.StatusCreated).SendString("This is 201")
}

type Data struct {
	Msg      string `json:"msg"`
	Acount   int    `json:"acount"`
	Username string `json:"username"`
}

func (h *Controller) GetJSON(ctx router.Context) error {
	return ctx.JSON(http.StatusOK, Data{
		Msg:      "abc",
		Acount:   32,
		Username: "name",
	})
}

func (h *Controller) ValidateData(ctx router.Context) error {
	payload := new(UserRequest)
	if err := ctx.Bind(payload); err != nil {
		return badInput(err, "invalid user payload")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	return ctx.SendStatus(http.StatusOK)
}

func badInput(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryBadInput, msg).
		WithCode(errors.CodeBadRequest)
}
