package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"competition_backend/internals/features/statistics/dto"
	"competition_backend/internals/features/statistics/service"
	helper "competition_backend/internals/helpers"
)

var validate = validator.New()

type ZoneStatsController struct {
	Service *service.ZoneStatsService
}

func NewZoneStatsController(svc *service.ZoneStatsService) *ZoneStatsController {
	return &ZoneStatsController{Service: svc}
}

// GET /zones/:zone_id/statistics?refresh=true
func (ctrl *ZoneStatsController) GetZoneStatistics(c *fiber.Ctx) error {
	var p dto.StatsParams
	if err := c.ParamsParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid zone id")
	}
	if err := c.QueryParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := validate.Struct(p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid zone id")
	}

	res, err := ctrl.Service.ComputeZoneStatistics(c.UserContext(), p.ZoneID, service.StatsOptions{Refresh: p.Refresh})
	if err != nil {
		return statsError(err)
	}
	return helper.JsonOK(c, "ok", res)
}

func statsError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidZone):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrZoneNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Zone not found")
	case errors.Is(err, service.ErrNoActiveEvent):
		return fiber.NewError(fiber.StatusNotFound, "No active event")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
