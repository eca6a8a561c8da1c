package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"competition_backend/internals/configs"
	reqLogger "competition_backend/internals/middlewares/logger"
)

const defaultRequestTimeout = 15 * time.Second

// SetupMiddlewares installs the app-wide chain in order.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(defaultRequestTimeout))
	app.Use(reqLogger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
}
