package server

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nhle/assessment-calendar/internal/model"
)

// Handler carries the dependencies of the API endpoints. Every handler
// catches its own database error, logs it, and answers 500 with the error
// embedded; the only other failure classes are 400 (missing required field)
// and 404 (unknown ID).
type Handler struct {
	repo     Repository
	validate *validator.Validate
}

// NewHandler creates a handler backed by the given repository.
func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(),
	}
}

// List handles GET /api/calendar.
func (h *Handler) List(c *fiber.Ctx) error {
	rows, err := h.repo.List(c.Context())
	if err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error retrieving calendar data", err)
	}
	if rows == nil {
		rows = []model.Assessment{}
	}
	return OK(c, fiber.StatusOK, rows, "Calendar data retrieved successfully")
}

// ListByDate handles GET /api/calendar/:date where date is YYYY-MM-DD.
func (h *Handler) ListByDate(c *fiber.Ctx) error {
	date := c.Params("date")

	rows, err := h.repo.ListByDate(c.Context(), date)
	if err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error retrieving calendar data for date", err)
	}
	if rows == nil {
		rows = []model.Assessment{}
	}
	return OK(c, fiber.StatusOK, rows, "Calendar data for "+date+" retrieved successfully")
}

// Create handles POST /api/calendar.
func (h *Handler) Create(c *fiber.Ctx) error {
	var in model.AssessmentInput
	if err := c.BodyParser(&in); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Name and submit_date are required", nil)
	}

	if err := h.validate.Struct(&in); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Name and submit_date are required", nil)
	}
	in.ApplyDefaults()

	a := model.Assessment{
		Name:        in.Name,
		Description: in.Description,
		SubmitDate:  in.SubmitDate,
		Color:       in.Color,
	}
	if err := h.repo.Create(c.Context(), &a); err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error creating assessment", err)
	}

	return OK(c, fiber.StatusCreated, a, "Assessment created successfully")
}

// Update handles PUT /api/calendar/:id. The row is checked for existence
// first and then overwritten unconditionally: concurrent writers race as
// last-write-wins.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return Fail(c, fiber.StatusNotFound, "Assessment not found", nil)
	}

	var in model.AssessmentInput
	if err := c.BodyParser(&in); err != nil {
		return Fail(c, fiber.StatusBadRequest, "Name and submit_date are required", nil)
	}

	existing, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error updating assessment", err)
	}
	if existing == nil {
		return Fail(c, fiber.StatusNotFound, "Assessment not found", nil)
	}

	a := model.Assessment{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		SubmitDate:  in.SubmitDate,
		Color:       in.Color,
	}
	if err := h.repo.Update(c.Context(), &a); err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error updating assessment", err)
	}

	return OK(c, fiber.StatusOK, a, "Assessment updated successfully")
}

// Delete handles DELETE /api/calendar/:id and returns the deleted row.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return Fail(c, fiber.StatusNotFound, "Assessment not found", nil)
	}

	existing, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error deleting assessment", err)
	}
	if existing == nil {
		return Fail(c, fiber.StatusNotFound, "Assessment not found", nil)
	}

	if err := h.repo.Delete(c.Context(), id); err != nil {
		log.Printf("database error: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "Error deleting assessment", err)
	}

	return OK(c, fiber.StatusOK, existing, "Assessment deleted successfully")
}

// Health handles GET /api/health.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:   true,
		Message:   "Calendar API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Index handles GET / with a plain endpoint listing.
func (h *Handler) Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Calendar API Server",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"GET /api/calendar":        "Get all assessments",
			"GET /api/calendar/:date":  "Get assessments by date",
			"POST /api/calendar":       "Create new assessment",
			"PUT /api/calendar/:id":    "Update assessment",
			"DELETE /api/calendar/:id": "Delete assessment",
			"GET /api/health":          "Health check",
		},
	})
}
