package auth

import (
	"database/sql"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/utils"
)

// LoginHandler checks admin credentials and issues a 24h session token.
func LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid login request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Email and password are required.",
		))
	}

	var user User
	err := config.DB.Get(&user, `
		SELECT id, email, password, role_id, token_version
		FROM users WHERE email = ?
	`, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeInvalidCredentials,
				"Invalid email or password.",
			))
		}
		log.Error("Failed to fetch user", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		log.Warn("Failed login attempt", logger.String("email", req.Email))
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password.",
		))
	}

	loginTime := time.Now().UTC()
	token, err := utils.GenerateJWT(user.ID, user.Email, user.RoleID, user.TokenVersion, loginTime)
	if err != nil {
		log.Error("Failed to generate session token", err, logger.UserID(user.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	if _, err := config.DB.Exec(`UPDATE users SET last_login = NOW() WHERE id = ?`, user.ID); err != nil {
		log.Warn("Failed to update last login", logger.Err(err), logger.UserID(user.ID))
	}

	log.Info("Admin logged in", logger.UserID(user.ID))

	return apperrors.RespondWithData(c, LoginResponse{
		Token:     token,
		Email:     user.Email,
		RoleID:    user.RoleID,
		LoginTime: loginTime.Unix(),
	})
}
