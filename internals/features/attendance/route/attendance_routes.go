package route

import (
	"github.com/gofiber/fiber/v2"

	attCtrl "competition_backend/internals/features/attendance/controller"
	"competition_backend/internals/features/attendance/service"
	"competition_backend/internals/middlewares"
)

// AttendanceAdminRoutes mounts under an authenticated ADMIN/OPERATOR group.
func AttendanceAdminRoutes(r fiber.Router, svc *service.SyncService) {
	ctrl := attCtrl.NewAttendanceSyncController(svc)

	g := r.Group("/events/:event_id/attendance")
	g.Post("/sync", middlewares.SyncRateLimiter(), ctrl.Sync)
	g.Get("/sync-runs", ctrl.ListRuns)
}
