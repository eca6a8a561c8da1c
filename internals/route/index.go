package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"competition_backend/internals/constants"
	attendanceRoute "competition_backend/internals/features/attendance/route"
	attendanceService "competition_backend/internals/features/attendance/service"
	statsRoute "competition_backend/internals/features/statistics/route"
	statsService "competition_backend/internals/features/statistics/service"
	"competition_backend/internals/logger"
	"competition_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps are built once in main and shared with the cron scheduler, so the
// per-event sync lock covers both triggers.
type Deps struct {
	DB        *gorm.DB
	JWTSecret string
	Sync      *attendanceService.SyncService
	ZoneStats *statsService.ZoneStatsService
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()
	log := logger.L()

	log.Info("[ROUTES] Setting up base routes...")
	BaseRoutes(app, deps.DB)

	// ===================== ADMIN / OPERATOR =====================
	log.Info("[ROUTES] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		auth.AuthMiddleware(auth.AuthOpts{
			Secret:              deps.JWTSecret,
			AllowCookieFallback: true,
		}),
		auth.RequireRoles(constants.SyncRoles...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Info("[ROUTES] Mounting attendance routes...")
	attendanceRoute.AttendanceAdminRoutes(admin, deps.Sync)

	log.Info("[ROUTES] Mounting statistics routes...")
	statsRoute.StatisticsAdminRoutes(admin, deps.ZoneStats)
}
