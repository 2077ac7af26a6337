package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mistogo/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeApp() *fiber.App {
	app := fiber.New()
	app.Get("/probe", ResolveIdentity, func(c *fiber.Ctx) error {
		var id interface{}
		if userID := CallerID(c); userID != nil {
			id = *userID
		}
		return c.JSON(fiber.Map{"userId": id, "isAdmin": CallerIsAdmin(c)})
	})
	app.Get("/admin", ResolveIdentity, RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func get(t *testing.T, app *fiber.App, target string, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestIdentityFromHeaders(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := probeApp()

	resp := get(t, app, "/probe", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/probe", map[string]string{"User-Id": "not-a-number"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIdentityFromBearerToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := probeApp()

	token, err := GenerateJWT(42, "Oksana", "oksana@mistogo.ua", "ADMIN")
	require.NoError(t, err)

	resp := get(t, app, "/admin", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/probe", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIdentityRejectsNonNumericUserIdClaim(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := probeApp()

	// Correctly signed, but the userId claim is not a number.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "forty-two",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp := get(t, app, "/probe", map[string]string{"Authorization": "Bearer " + signed})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := probeApp()

	// Guest gets 401, a known non-admin user gets 403.
	resp := get(t, app, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, app, "/admin", map[string]string{"User-Id": "42"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = get(t, app, "/admin", map[string]string{"User-Id": "1", "Is-Admin": "true"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
