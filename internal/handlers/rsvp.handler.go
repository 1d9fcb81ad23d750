package handlers

import (
	"errors"

	"guestlist/internal/app"
	rsvpController "guestlist/internal/controllers/rsvp"
	"guestlist/internal/logger"
	"guestlist/internal/rsvp"

	"github.com/gofiber/fiber/v2"
)

type RSVPHandler struct {
	Handler
	controller rsvpController.RSVPController
}

type SubmitRequest struct {
	Drafts []rsvp.Draft `json:"drafts"`
}

type SubmitNewRequest struct {
	FullName string     `json:"fullName"`
	Draft    rsvp.Draft `json:"draft"`
}

func NewRSVPHandler(app app.App, router fiber.Router) *RSVPHandler {
	log := logger.New("handlers").File("rsvp_handler")
	return &RSVPHandler{
		controller: *app.RSVPController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

// RSVP routes are public: guests reach them from the invitation link.
func (h *RSVPHandler) Register() {
	rsvpGroup := h.router.Group("/rsvp")
	rsvpGroup.Get("/search", h.search)
	rsvpGroup.Get("/drafts/:guestId", h.drafts)
	rsvpGroup.Post("/submit", h.submit)
	rsvpGroup.Post("/submit-new", h.submitNew)
}

func (h *RSVPHandler) search(c *fiber.Ctx) error {
	log := h.log.Function("search")

	query := c.Query("q")
	suggestions, err := h.controller.Search(c.Context(), query)
	if err != nil {
		log.Er("failed to search roster", err, "query", query)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to search roster"})
	}

	return c.JSON(fiber.Map{"message": "success", "suggestions": suggestions})
}

func (h *RSVPHandler) drafts(c *fiber.Ctx) error {
	log := h.log.Function("drafts")

	guestID := c.Params("guestId")
	drafts, err := h.controller.BuildDrafts(c.Context(), guestID)
	if err != nil {
		log.Er("failed to build drafts", err, "guestID", guestID)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "guest not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "drafts": drafts})
}

func (h *RSVPHandler) submit(c *fiber.Ctx) error {
	log := h.log.Function("submit")

	var request SubmitRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse submission", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse submission"})
	}

	result, err := h.controller.Submit(c.Context(), request.Drafts)
	if err != nil {
		var validationErr *rsvp.SubmissionValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(fiber.Map{"message": validationErr.Error()})
		}
		log.Er("failed to commit submission", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to commit submission"})
	}

	return c.JSON(fiber.Map{"message": "success", "result": result})
}

func (h *RSVPHandler) submitNew(c *fiber.Ctx) error {
	log := h.log.Function("submitNew")

	var request SubmitNewRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse submission", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse submission"})
	}

	result, err := h.controller.SubmitNew(c.Context(), request.FullName, request.Draft)
	if err != nil {
		var validationErr *rsvp.SubmissionValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(fiber.Map{"message": validationErr.Error()})
		}
		log.Er("failed to commit new guest submission", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to commit submission"})
	}

	return c.JSON(fiber.Map{"message": "success", "result": result})
}
