package task

import (
	"net/http"
	"strconv"

	"github.com/goliatone/go-router"
)

type ControllerRoutes struct {
	Create        string
	Get           string
	List          string
	UpdateAtomic  string
	PartialUpdate string
	Delete        string
	SoftDelete    string
}

// Controller exposes the task service over HTTP
type Controller struct {
	Service *Service
	Routes  *ControllerRoutes
}

func NewController(service *Service) *Controller {
	if service == nil {
		panic("Missing Service in task controller...")
	}

	return &Controller{
		Service: service,
		Routes: &ControllerRoutes{
			Create:        "/create_task",
			Get:           "/get_task/:id",
			List:          "/get_tasks",
			UpdateAtomic:  "/update_task_atomic/:id",
			PartialUpdate: "/partial_update_task/:id",
			Delete:        "/delete_task/:id",
			SoftDelete:    "/soft_delete_task/:id",
		},
	}
}

// RegisterRoutes mounts the task routes
func RegisterRoutes[T any](app router.Router[T], controller *Controller) {
	app.Post(controller.Routes.Create, controller.Create).SetName("task.create")
	app.Get(controller.Routes.Get, controller.Get).SetName("task.get")
	app.Get(controller.Routes.List, controller.List).SetName("task.list")
	app.Put(controller.Routes.UpdateAtomic, controller.UpdateAtomic).SetName("task.update_atomic")
	app.Patch(controller.Routes.PartialUpdate, controller.PartialUpdate).SetName("task.partial_update")
	app.Delete(controller.Routes.Delete, controller.Delete).SetName("task.delete")
	app.Delete(controller.Routes.SoftDelete, controller.SoftDelete).SetName("task.soft_delete")
}

func (h *Controller) Create(ctx router.Context) error {
	payload := new(CreateRequest)
	if err := ctx.Bind(payload); err != nil {
		return badPayload(err, "unable to parse task payload")
	}

	record, err := h.Service.Create(ctx.Context(), *payload)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, record)
}

func (h *Controller) Get(ctx router.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return err
	}

	record, err := h.Service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, record)
}

func (h *Controller) List(ctx router.Context) error {
	records, err := h.Service.List(ctx.Context(), PriorityFilterFromQuery(ctx, "priority"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}

func (h *Controller) UpdateAtomic(ctx router.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return err
	}

	payload := new(ReplaceRequest)
	if err := ctx.Bind(payload); err != nil {
		return badPayload(err, "unable to parse task replacement")
	}

	record, err := h.Service.ReplaceAtomic(ctx.Context(), id, *payload)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, record)
}

func (h *Controller) PartialUpdate(ctx router.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return err
	}

	patch := Patch{}
	if err := ctx.Bind(&patch); err != nil {
		return badPayload(err, "unable to parse task patch")
	}

	record, err := h.Service.PartialUpdate(ctx.Context(), id, patch)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, record)
}

func (h *Controller) Delete(ctx router.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return err
	}

	if err := h.Service.HardDelete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.SendStatus(http.StatusOK)
}

func (h *Controller) SoftDelete(ctx router.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return err
	}

	if _, err := h.Service.SoftDelete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.SendStatus(http.StatusOK)
}

func taskID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidTaskID.Clone().WithMetadata(map[string]any{"id": raw})
	}
	return id, nil
}
