package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"truckshop-platform/pkg/apperrors"
)

const testSecret = "test-secret"

// signToken builds a token directly so tests can set exp and login_time
// independently.
func signToken(t *testing.T, loginTime time.Time, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    int64(1),
		"email":      "admin@truckshop.local",
		"role_id":    int64(0),
		"login_time": loginTime.Unix(),
		"exp":        exp.Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runJWTMiddleware(token string) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/services", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := JWTMiddleware(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	handler(c)
	return rec, nextCalled
}

func TestJWTMiddlewareRejectsStaleSession(t *testing.T) {
	viper.Set("JWT_SECRET", testSecret)
	defer viper.Reset()

	// exp is still in the future, but the login anchor is past the
	// session lifetime. The session check must win.
	token := signToken(t,
		time.Now().Add(-25*time.Hour),
		time.Now().Add(time.Hour),
	)

	rec, nextCalled := runJWTMiddleware(token)
	if nextCalled {
		t.Fatal("handler ran for a stale session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body apperrors.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != apperrors.ErrCodeSessionExpired {
		t.Fatalf("error code = %q, want %q", body.Error, apperrors.ErrCodeSessionExpired)
	}
}

func TestJWTMiddlewareAllowsFreshSession(t *testing.T) {
	viper.Set("JWT_SECRET", testSecret)
	defer viper.Reset()

	token := signToken(t, time.Now(), time.Now().Add(time.Hour))
	rec, nextCalled := runJWTMiddleware(token)
	if !nextCalled {
		t.Fatalf("handler did not run, status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	viper.Set("JWT_SECRET", testSecret)
	defer viper.Reset()

	rec, nextCalled := runJWTMiddleware("")
	if nextCalled || rec.Code != http.StatusUnauthorized {
		t.Fatalf("nextCalled=%v status=%d, want rejected with 401", nextCalled, rec.Code)
	}
}

func TestJWTMiddlewareRejectsWrongSignature(t *testing.T) {
	viper.Set("JWT_SECRET", "a-different-secret")
	defer viper.Reset()

	token := signToken(t, time.Now(), time.Now().Add(time.Hour))
	rec, nextCalled := runJWTMiddleware(token)
	if nextCalled || rec.Code != http.StatusUnauthorized {
		t.Fatalf("nextCalled=%v status=%d, want rejected with 401", nextCalled, rec.Code)
	}
}

func TestRoleMiddlewareDeniesLowerPrivilege(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role_id", RoleEditor)

	nextCalled := false
	handler := RoleMiddleware(RoleSuperAdmin)(func(c echo.Context) error {
		nextCalled = true
		return nil
	})
	handler(c)

	if nextCalled || rec.Code != http.StatusForbidden {
		t.Fatalf("nextCalled=%v status=%d, want 403 denial", nextCalled, rec.Code)
	}
}
