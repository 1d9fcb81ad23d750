package middleware

import (
	"context"
	"time"

	"guestlist/config"
	"guestlist/internal/database"
	"guestlist/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const SESSION_EXPIRY = 24 * time.Hour

type Session struct {
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
}

type Middleware struct {
	db     database.DB
	config config.Config
	log    logger.Logger
}

func New(db database.DB, config config.Config) Middleware {
	return Middleware{
		db:     db,
		config: config,
		log:    logger.New("middleware"),
	}
}

// RequireSession guards the dashboard endpoints. RSVP endpoints stay open,
// guests respond without an account.
func (m Middleware) RequireSession(c *fiber.Ctx) error {
	token := c.Cookies("session")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	var session Session
	found, err := database.NewCacheBuilder(m.db.Cache.Session, token).
		WithContext(c.Context()).
		Get(&session)
	if err != nil {
		m.log.Function("RequireSession").Er("failed to look up session", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to verify session"})
	}
	if !found {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "session expired"})
	}

	c.Locals("login", session.Login)
	return c.Next()
}

func (m Middleware) CreateSession(ctx context.Context, login string) (string, error) {
	log := m.log.Function("CreateSession")

	token := uuid.NewString()
	session := Session{Login: login, CreatedAt: time.Now().UTC()}

	if err := database.NewCacheBuilder(m.db.Cache.Session, token).
		WithStruct(session).
		WithTTL(SESSION_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return "", log.Err("failed to store session", err)
	}

	return token, nil
}

func (m Middleware) DestroySession(ctx context.Context, token string) error {
	return database.NewCacheBuilder(m.db.Cache.Session, token).
		WithContext(ctx).
		Delete()
}
