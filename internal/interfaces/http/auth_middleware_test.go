package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockroom-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testStoreID   = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "stockroom-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, identity(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func identity(role string) pkgjwt.Identity {
	return pkgjwt.Identity{
		UserID:   testUserID,
		Username: "bodega01",
		Role:     role,
		StoreIDs: []string{testStoreID},
	}
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el role debe ser admin")
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_StorekeeperAccedeRutaDeStock(t *testing.T) {
	app := buildTestApp(apphttp.RolesStockWrite...)
	resp := doRequest(t, app, tokenForRole(t, "storekeeper"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"storekeeper debe poder acceder a ruta de movimientos de stock")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ViewerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"viewer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 2b: viewer es solo lectura → bloqueado en rutas de stock.
func TestRequireRole_ViewerBloqueadoEnRutaDeStock(t *testing.T) {
	app := buildTestApp(apphttp.RolesStockWrite...)
	resp := doRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: Token sin claim de rol (emulado con token vacío) → HTTP 401.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	// Generamos un token con rol vacío para simular un token legacy sin el claim.
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, identity(""), testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		actor := apphttp.GetActor(c)
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"username":  actor.Username,
			"role":      apphttp.GetRole(c),
			"store_ids": apphttp.GetStoreIDs(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "storekeeper"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID   string   `json:"user_id"`
		Username string   `json:"username"`
		Role     string   `json:"role"`
		StoreIDs []string `json:"store_ids"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "bodega01", body.Username)
	assert.Equal(t, "storekeeper", body.Role)
	assert.Equal(t, []string{testStoreID}, body.StoreIDs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireStoreScope
// ──────────────────────────────────────────────────────────────────────────────

func buildScopeApp() *fiber.App {
	app := fiber.New()
	app.Get("/stores/:id", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireStoreScope("id"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func scopeRequest(t *testing.T, app *fiber.App, storeID, role string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/stores/"+storeID, nil)
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireStoreScope(t *testing.T) {
	app := buildScopeApp()
	otherStore := "00000000-0000-0000-0000-000000000099"

	assert.Equal(t, http.StatusOK, scopeRequest(t, app, testStoreID, "storekeeper"), "storekeeper lee su tienda")
	assert.Equal(t, http.StatusForbidden, scopeRequest(t, app, otherStore, "storekeeper"), "storekeeper no lee tiendas ajenas")
	assert.Equal(t, http.StatusOK, scopeRequest(t, app, otherStore, "manager"), "manager lee todas las tiendas")
	assert.Equal(t, http.StatusOK, scopeRequest(t, app, otherStore, "viewer"), "viewer tiene lectura global")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse con identidad
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConIdentidad(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, identity("storekeeper"), testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, id.UserID)
	assert.Equal(t, "bodega01", id.Username)
	assert.Equal(t, "storekeeper", id.Role)
	assert.Equal(t, []string{testStoreID}, id.StoreIDs)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, identity("admin"), testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, identity("admin"), testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
