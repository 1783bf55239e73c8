package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edmback/pkg/auth"
	"github.com/edmback/pkg/config"
	"github.com/edmback/pkg/errors"
	"github.com/edmback/pkg/response"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func decode(t *testing.T, resp *http.Response) response.Response {
	t.Helper()
	defer resp.Body.Close()
	var out response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestJWTAuth(t *testing.T) {
	manager := auth.NewJWTManager(&config.JWTConfig{Secret: "k", Expire: 60})
	app := fiber.New()
	app.Get("/me", JWTAuth(manager), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": GetUsername(c), "roles": GetRoles(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, response.CodeUnauthorized, out.Code)
	assert.Equal(t, "未提供认证令牌", out.Message)

	bad := httptest.NewRequest(http.MethodGet, "/me", nil)
	bad.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")
	resp, err = app.Test(bad)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "无效的认证令牌", decode(t, resp).Message)

	token, err := manager.GenerateToken("ada", []string{auth.RoleAdminName})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ada", body.Username)
	assert.Equal(t, []string{auth.RoleAdminName}, body.Roles)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthorize(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	enforcer, err := auth.NewEnforcer(db, "")
	require.NoError(t, err)
	require.NoError(t, auth.SeedPolicies(enforcer, auth.DefaultPolicies))

	withRoles := func(roles ...string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if len(roles) > 0 {
				c.Locals(LocalRoles, roles)
			}
			return c.Next()
		}
	}
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }

	tests := []struct {
		name    string
		roles   []string
		method  string
		want    int
		wantMsg string
	}{
		{"no roles", nil, http.MethodGet, http.StatusUnauthorized, errors.ErrUnauthorized.Message},
		{"staff read", []string{auth.RoleStaffName}, http.MethodGet, http.StatusNoContent, ""},
		{"staff write", []string{auth.RoleStaffName}, http.MethodDelete, http.StatusForbidden, errors.ErrForbidden.Message},
		{"mixed roles", []string{auth.RoleStaffName, auth.RoleAdminName}, http.MethodDelete, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Add(tt.method, "/api/departments/:id", withRoles(tt.roles...), Authorize(enforcer), ok)

			resp, err := app.Test(httptest.NewRequest(tt.method, "/api/departments/D1", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode(t, resp).Message)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "given")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "given", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	app := fiber.New()
	app.Use(Recovery())
	app.Get("/", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return errors.UniqueKey(nil, errors.MsgPKExist)
	})
	app.Get("/opaque", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, errors.MsgPKExist, decode(t, resp).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/opaque", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, response.MsgServerError, decode(t, resp).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
