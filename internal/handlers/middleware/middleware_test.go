package middleware

import (
	"net/http/httptest"
	"testing"

	"guestlist/config"
	"guestlist/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireSession_NoCookie(t *testing.T) {
	m := New(database.DB{}, config.Config{})

	app := fiber.New()
	app.Get("/guarded", m.RequireSession, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
