package handlers

import (
	"bytes"

	"guestlist/internal/app"
	guestController "guestlist/internal/controllers/guests"
	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GuestHandler struct {
	Handler
	controller guestController.GuestController
}

func NewGuestHandler(app app.App, router fiber.Router) *GuestHandler {
	log := logger.New("handlers").File("guest_handler")
	return &GuestHandler{
		controller: *app.GuestController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GuestHandler) Register() {
	guests := h.router.Group("/guests", h.middleware.RequireSession)
	guests.Get("/", h.getGuests)
	guests.Get("/export", h.exportGuests)
	guests.Get("/:id", h.getGuest)
	guests.Post("/", h.createGuest)
	guests.Patch("/:id", h.updateGuest)
	guests.Delete("/:id", h.deleteGuest)
}

func (h *GuestHandler) getGuests(c *fiber.Ctx) error {
	log := h.log.Function("getGuests")

	guests, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get guests", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get guests"})
	}

	return c.JSON(fiber.Map{"message": "success", "guests": guests})
}

func (h *GuestHandler) getGuest(c *fiber.Ctx) error {
	log := h.log.Function("getGuest")

	id := c.Params("id")
	guest, err := h.controller.GetByID(c.Context(), id)
	if err != nil {
		log.Er("failed to get guest", err, "id", id)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "guest not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "guest": guest})
}

func (h *GuestHandler) createGuest(c *fiber.Ctx) error {
	log := h.log.Function("createGuest")

	var request CreateGuestRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse guest request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse guest request"})
	}

	guest, err := h.controller.Create(c.Context(), &request)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to create guest", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "guest": guest})
}

func (h *GuestHandler) updateGuest(c *fiber.Ctx) error {
	log := h.log.Function("updateGuest")

	var request UpdateGuestRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse guest update", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse guest update"})
	}

	guest, err := h.controller.Update(c.Context(), c.Params("id"), &request)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to update guest", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "guest": guest})
}

func (h *GuestHandler) deleteGuest(c *fiber.Ctx) error {
	log := h.log.Function("deleteGuest")

	id := c.Params("id")
	if err := h.controller.Delete(c.Context(), id); err != nil {
		log.Er("failed to delete guest", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete guest"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *GuestHandler) exportGuests(c *fiber.Ctx) error {
	log := h.log.Function("exportGuests")

	guests, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get guests for export", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export guests"})
	}

	var buf bytes.Buffer
	if err := utils.ExportGuestsCSV(&buf, guests); err != nil {
		log.Er("failed to write guest CSV", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export guests"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="guests.csv"`)
	return c.Send(buf.Bytes())
}
