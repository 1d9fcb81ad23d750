package handlers

import (
	"context"

	"guestlist/internal/app"
	importController "guestlist/internal/controllers/imports"
	"guestlist/internal/importer"
	"guestlist/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	Handler
	controller importController.ImportController
}

type ParseRequest struct {
	Raw string `json:"raw"`
}

type ApplyMappingRequest struct {
	Records []importer.ParsedGuest `json:"records"`
	Mapping *importer.SideMapping  `json:"mapping"`
}

type RunImportRequest struct {
	Records []importer.ParsedGuest `json:"records"`
}

func NewImportHandler(app app.App, router fiber.Router) *ImportHandler {
	log := logger.New("handlers").File("import_handler")
	return &ImportHandler{
		controller: *app.ImportController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ImportHandler) Register() {
	imports := h.router.Group("/imports", h.middleware.RequireSession)
	imports.Post("/preview", h.preview)
	imports.Post("/mapping", h.applyMapping)
	imports.Post("/", h.runImport)
	imports.Get("/", h.getRuns)
	imports.Get("/:id", h.getRun)
}

func (h *ImportHandler) preview(c *fiber.Ctx) error {
	log := h.log.Function("preview")

	var request ParseRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse preview request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse preview request"})
	}

	preview, err := h.controller.ParsePreview(request.Raw)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "failed to parse input", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "preview": preview})
}

func (h *ImportHandler) applyMapping(c *fiber.Ctx) error {
	log := h.log.Function("applyMapping")

	var request ApplyMappingRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse mapping request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse mapping request"})
	}

	if request.Mapping == nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "mapping is required"})
	}

	records, err := h.controller.ApplySideMapping(request.Records, request.Mapping)
	if err != nil {
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"message": "failed to apply side mapping", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "records": records})
}

// runImport kicks off the batch sequence in the background and returns the
// run record immediately; progress streams over the websocket. The detached
// context means dismissing the dialog does not abort batches already queued.
func (h *ImportHandler) runImport(c *fiber.Ctx) error {
	log := h.log.Function("runImport")

	var request RunImportRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse import request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse import request"})
	}

	if len(request.Records) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "no records to import"})
	}

	go func() {
		if _, err := h.controller.RunImport(context.Background(), request.Records); err != nil {
			log.Er("import run finished with error", err)
		}
	}()

	return c.Status(fiber.StatusAccepted).
		JSON(fiber.Map{"message": "import started"})
}

func (h *ImportHandler) getRuns(c *fiber.Ctx) error {
	log := h.log.Function("getRuns")

	runs, err := h.controller.GetRuns(c.Context())
	if err != nil {
		log.Er("failed to get import runs", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get import runs"})
	}

	return c.JSON(fiber.Map{"message": "success", "imports": runs})
}

func (h *ImportHandler) getRun(c *fiber.Ctx) error {
	log := h.log.Function("getRun")

	id := c.Params("id")
	run, err := h.controller.GetRun(c.Context(), id)
	if err != nil {
		log.Er("failed to get import run", err, "id", id)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "import run not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "import": run})
}
