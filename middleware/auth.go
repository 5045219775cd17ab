package middleware

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/utils"
)

// JWTMiddleware validates the admin session token, enforces the 24h session
// lifetime anchored at login_time, and extracts user claims into the context.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		jwtSecret := viper.GetString("JWT_SECRET")

		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Missing or invalid token.",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if len(strings.Split(tokenString, ".")) != 3 {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenMalformed,
				"Malformed token.",
			))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenExpired,
				"Invalid or expired token.",
			))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}

		// The session anchor: a login older than the session lifetime forces
		// re-login even if the token's exp claim were still in the future.
		loginTimeClaim, ok := claims["login_time"].(float64)
		if !ok {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Invalid token claims.",
			))
		}
		if time.Since(time.Unix(int64(loginTimeClaim), 0)) > utils.SessionLifetime {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeSessionExpired,
				"Session expired. Please login again.",
			))
		}

		userID := int64(claims["user_id"].(float64))
		c.Set("user_id", userID)
		c.Set("email", claims["email"].(string))
		c.Set("role_id", int64(claims["role_id"].(float64)))

		// Password changes bump token_version; stale tokens are revoked.
		if tokenVersionClaim, ok := claims["token_version"]; ok {
			claimVersion := int64(tokenVersionClaim.(float64))
			var dbVersion int64
			err := config.DB.QueryRow("SELECT token_version FROM users WHERE id = ?", userID).Scan(&dbVersion)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
						apperrors.ErrCodeTokenInvalid,
						"User not found.",
					))
				}
				return apperrors.RespondWithError(c, apperrors.NewInternal(
					apperrors.ErrCodeDatabaseError,
					"Internal server error.",
					err,
				))
			}
			if claimVersion != dbVersion {
				return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
					apperrors.ErrCodeSessionExpired,
					"Session revoked. Please login again.",
				))
			}
		}

		return next(c)
	}
}
