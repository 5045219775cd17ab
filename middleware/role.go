package middleware

import (
	"github.com/labstack/echo/v4"

	"truckshop-platform/pkg/apperrors"
)

// Role IDs. Superadmins manage operators; editors manage site content.
const (
	RoleSuperAdmin int64 = 0
	RoleEditor     int64 = 1
)

// RoleMiddleware restricts a route to operators whose role is at most
// requiredRole (lower is more privileged). JWTMiddleware must run first.
func RoleMiddleware(requiredRole int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, ok := c.Get("role_id").(int64)
			if !ok || roleID > requiredRole {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Access denied.",
				))
			}
			return next(c)
		}
	}
}
