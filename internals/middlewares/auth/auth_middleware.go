// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"competition_backend/internals/constants"
	"competition_backend/internals/logger"
)

type AuthOpts struct {
	Secret              string
	AllowCookieFallback bool          // use the access_token cookie when no Bearer header
	ExpirySkew          time.Duration // tolerated clock drift on exp
}

// AuthMiddleware verifies an HMAC-signed bearer token and stores role and
// user id in locals. Any failure is a 401.
func AuthMiddleware(o AuthOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	skew := o.ExpirySkew
	if skew == 0 {
		skew = 30 * time.Second
	}

	return func(c *fiber.Ctx) error {
		if secret == "" {
			logger.L().Error("[AUTH] JWT secret is empty")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing JWT Secret")
		}

		tokenString, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			logger.L().WithError(err).Debug("[AUTH] token parse failed")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, skew); err != nil {
			logger.L().WithError(err).Debug("[AUTH] token expiry check failed")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		c.Locals(constants.LocClaims, claims)
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}
