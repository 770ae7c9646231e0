package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	token, expiresAt, err := tm.GenerateToken("analyst@clinic", RoleAnalyst)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst@clinic", claims.Subject)
	assert.Equal(t, RoleAnalyst, claims.Role)
}

func TestTokenRejects(t *testing.T) {
	tm := NewTokenManager("secret", 30)

	_, _, err := tm.GenerateToken("", RoleAdmin)
	assert.Error(t, err)
	_, _, err = tm.GenerateToken("x", Role("ROOT"))
	assert.Error(t, err)

	token, _, err := NewTokenManager("other", 30).GenerateToken("x", RoleAdmin)
	require.NoError(t, err)
	_, err = tm.ParseToken(token)
	assert.Error(t, err)

	expired := NewTokenManager("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err = expired.GenerateToken("x", RoleAdmin)
	require.NoError(t, err)
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func newGuardedApp(tm *TokenManager, roles ...Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/guarded", NewAuthMiddleware(tm).Handle, RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.SendString(Actor(c))
	})
	return app
}

func TestMiddlewareAndRoles(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	app := newGuardedApp(tm, RoleAdmin, RoleAnalyst)

	analyst, _, err := tm.GenerateToken("ana", RoleAnalyst)
	require.NoError(t, err)
	clerk, _, err := tm.GenerateToken("cle", RoleClerk)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"role not allowed", "Bearer " + clerk, http.StatusForbidden},
		{"allowed", "Bearer " + analyst, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAnyRoleAccepted(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	app := newGuardedApp(tm)

	clerk, _, err := tm.GenerateToken("cle", RoleClerk)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+clerk)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
