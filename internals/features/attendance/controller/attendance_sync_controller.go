package controller

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"competition_backend/internals/features/attendance/dto"
	model "competition_backend/internals/features/attendance/model"
	"competition_backend/internals/features/attendance/service"
	helper "competition_backend/internals/helpers"
	"competition_backend/internals/middlewares/auth"
)

var validate = validator.New()

type AttendanceSyncController struct {
	Service *service.SyncService
}

func NewAttendanceSyncController(svc *service.SyncService) *AttendanceSyncController {
	return &AttendanceSyncController{Service: svc}
}

// POST /events/:event_id/attendance/sync?dry_run=true
func (ctrl *AttendanceSyncController) Sync(c *fiber.Ctx) error {
	var p dto.SyncParams
	if err := c.ParamsParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}
	if err := c.QueryParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := validate.Struct(p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}

	// the sync carries its own deadline, longer than the request's
	ctx := context.WithoutCancel(c.UserContext())
	res, err := ctrl.Service.Sync(ctx, p.EventID, service.SyncOptions{
		DryRun:      p.DryRun,
		Trigger:     model.TriggerHTTP,
		TriggeredBy: auth.CurrentUserID(c),
	})
	if err != nil {
		return syncError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     res.Message(),
		"syncResults": res,
	})
}

// GET /events/:event_id/attendance/sync-runs?page=1&per_page=20
func (ctrl *AttendanceSyncController) ListRuns(c *fiber.Ctx) error {
	var p dto.SyncParams
	if err := c.ParamsParser(&p); err != nil || validate.Struct(p) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid event id")
	}
	pg := helper.ParseFiber(c, helper.SyncRunsOpts)

	rows, total, err := ctrl.Service.ListRuns(c.UserContext(), p.EventID, pg.Limit(), pg.Offset())
	if err != nil {
		return syncError(err)
	}
	return helper.JsonList(c, "ok", dto.FromSyncRunModels(rows), helper.BuildMeta(total, pg))
}

func syncError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Event not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
