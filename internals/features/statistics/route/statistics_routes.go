package route

import (
	"github.com/gofiber/fiber/v2"

	statsCtrl "competition_backend/internals/features/statistics/controller"
	"competition_backend/internals/features/statistics/service"
)

// StatisticsAdminRoutes mounts under an authenticated ADMIN/OPERATOR group.
func StatisticsAdminRoutes(r fiber.Router, svc *service.ZoneStatsService) {
	ctrl := statsCtrl.NewZoneStatsController(svc)

	r.Get("/zones/:zone_id/statistics", ctrl.GetZoneStatistics)
}
