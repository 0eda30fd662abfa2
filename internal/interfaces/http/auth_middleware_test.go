package http_test

import (
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/jhoicas/stockvoz-api/internal/interfaces/http"
	"github.com/jhoicas/stockvoz-api/pkg/jwt"
)

const testSecret = "super-secret-de-pruebas"

// newAuthApp app mínima con el middleware y una ruta que expone lo que quedó
// en Locals, para poder asertar owner y actor.
func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(httpiface.AuthMiddleware(testSecret))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"owner": httpiface.GetOwnerKey(c),
			"actor": httpiface.GetActor(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*stdhttp.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return resp, out
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := newAuthApp()
	resp, out := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", out["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := newAuthApp()
	resp, out := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out["code"])
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newAuthApp()
	resp, out := doRequest(t, app, "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "owner@example.com", "tester", "stockvoz", -5)
	require.NoError(t, err)

	app := newAuthApp()
	resp, out := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out["code"])
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", "owner@example.com", "tester", "stockvoz", 60)
	require.NoError(t, err)

	app := newAuthApp()
	resp, out := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", out["code"])
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	token, err := jwt.Generate(testSecret, "owner@example.com", "tester", "stockvoz", 60)
	require.NoError(t, err)

	app := newAuthApp()
	resp, out := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@example.com", out["owner"])
	assert.Equal(t, "tester", out["actor"])
}
