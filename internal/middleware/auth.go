package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customer-registry/internal/auth"
)

const bearerScheme = "Bearer"

// Authorize rejects requests without valid Bearer jwt
func Authorize(validator *auth.JwtValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHdr := c.Request().Header.Get(echo.HeaderAuthorization)
			hdrSplit := strings.Split(authHdr, " ")
			if len(hdrSplit) != 2 || !strings.EqualFold(hdrSplit[0], bearerScheme) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
			}

			if _, err := validator.Verify(hdrSplit[1]); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			return next(c)
		}
	}
}
