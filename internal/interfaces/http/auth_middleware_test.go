package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/marketplace-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// buildTestApp construye la app completa (router + SessionMiddleware) sobre el almacén en memoria.
func buildTestApp(t *testing.T, loginRateMax int) *fiber.App {
	t.Helper()
	store := memory.New()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store, zerolog.Nop(), auth.Options{BcryptCost: bcrypt.MinCost}),
		SellerUC:     usecase.NewSellerUseCase(store, nil, zerolog.Nop()),
		ProductUC:    usecase.NewProductUseCase(store, zerolog.Nop(), nil),
		LoginRateMax: loginRateMax,
	})
	return app
}

// doRequest lanza la petición y decodifica el sobre de respuesta.
func doRequest(t *testing.T, app *fiber.App, method, path, body, authHeader string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// loginAs registra y loguea una cuenta, devolviendo el header "Bearer <token>".
func loginAs(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, _ := doRequest(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"`+username+`","password":"secret1","email":"`+username+`@x.com"}`, "")
	require.Equal(t, http.StatusCreated, status)

	status, env := doRequest(t, app, http.MethodPost, "/api/auth/login",
		`{"username":"`+username+`","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, status)

	var session struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.Equal(t, "Bearer", session.TokenType)
	return "Bearer " + session.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sesión válida → la mutación pasa (HTTP 201).
func TestSessionMiddleware_SesionValidaPermiteCrear(t *testing.T) {
	app := buildTestApp(t, 0)
	bearer := loginAs(t, app, "alice")

	status, env := doRequest(t, app, http.MethodPost, "/api/sellers", `{"name":"Bob","email":"bob@x.com"}`, bearer)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Vendedor creado exitosamente", env.Message)
}

// Caso 2: sin header Authorization → HTTP 401.
func TestSessionMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, 0)
	status, env := doRequest(t, app, http.MethodPost, "/api/sellers", `{"name":"Bob","email":"bob@x.com"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, env.Code)
}

// Caso 3: header mal formado → HTTP 400 antes de llegar al core.
func TestSessionMiddleware_HeaderMalFormado_Retorna400(t *testing.T) {
	app := buildTestApp(t, 0)
	for _, header := range []string{"Token abc", "Bearer", "Bearer    "} {
		status, env := doRequest(t, app, http.MethodDelete, "/api/products/1", "", header)
		assert.Equal(t, http.StatusBadRequest, status, header)
		assert.Equal(t, "Token no válido", env.Message, header)
	}
}

// Caso 4: token desconocido → HTTP 401.
func TestSessionMiddleware_TokenDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(t, 0)
	status, _ := doRequest(t, app, http.MethodDelete, "/api/sellers/1", "", "Bearer 0123456789abcdef0123456789abcdef")
	assert.Equal(t, http.StatusUnauthorized, status)
}

// Caso 5: tras logout el token deja de abrir rutas protegidas.
func TestSessionMiddleware_LogoutInvalidaToken(t *testing.T) {
	app := buildTestApp(t, 0)
	bearer := loginAs(t, app, "alice")

	status, env := doRequest(t, app, http.MethodGet, "/api/auth/me", "", bearer)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"username":"alice"`)

	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/logout", "", bearer)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, "/api/auth/me", "", bearer)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = doRequest(t, app, http.MethodGet, "/api/auth/validate", "", bearer)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"valid":false}`, string(env.Data))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesIncorrectas_Retorna401(t *testing.T) {
	app := buildTestApp(t, 0)
	loginAs(t, app, "alice")

	status, env := doRequest(t, app, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Contraseña incorrecta", env.Message)

	status, env = doRequest(t, app, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Usuario no encontrado", env.Message)
}

func TestRegister_Duplicado_Retorna400(t *testing.T) {
	app := buildTestApp(t, 0)
	loginAs(t, app, "alice")

	status, env := doRequest(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"secret1","email":"otra@x.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeConflict, env.Code)
	assert.Equal(t, "El username ya está en uso", env.Message)
}

func TestRegister_ValidacionDeFormato(t *testing.T) {
	app := buildTestApp(t, 0)
	status, env := doRequest(t, app, http.MethodPost, "/api/auth/register",
		`{"username":"al","password":"123","email":"no-es-email"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, env.Code)

	var fields []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	assert.ElementsMatch(t, []string{"username", "password", "email"}, names)
}

func TestValidate_SegundoLoginInvalidaPrimero(t *testing.T) {
	app := buildTestApp(t, 0)
	first := loginAs(t, app, "alice")

	status, env := doRequest(t, app, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, status)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	_, env = doRequest(t, app, http.MethodGet, "/api/auth/validate", "", first)
	assert.JSONEq(t, `{"valid":false}`, string(env.Data))
	_, env = doRequest(t, app, http.MethodGet, "/api/auth/validate", "", "Bearer "+session.Token)
	assert.JSONEq(t, `{"valid":true}`, string(env.Data))
}

func TestLogin_RateLimit_Retorna429(t *testing.T) {
	app := buildTestApp(t, 2)
	body := `{"username":"ghost","password":"x"}`

	for i := 0; i < 2; i++ {
		status, _ := doRequest(t, app, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, env := doRequest(t, app, http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.False(t, env.Success)
}
