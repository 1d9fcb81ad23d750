package handlers

import (
	"time"

	"guestlist/config"
	"guestlist/internal/app"
	"guestlist/internal/logger"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Handler
	config config.Config
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		config: app.Config,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	if request.Login != h.config.AdminLogin ||
		bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(request.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid credentials"})
	}

	token, err := h.middleware.CreateSession(c.Context(), request.Login)
	if err != nil {
		log.Er("failed to create session", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to create session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token := c.Cookies("session")
	if token != "" {
		if err := h.middleware.DestroySession(c.Context(), token); err != nil {
			log.Er("failed to destroy session", err)
		}
	}

	c.ClearCookie("session")
	return c.JSON(fiber.Map{"message": "success"})
}
