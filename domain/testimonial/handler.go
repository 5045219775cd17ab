package testimonial

import (
	"context"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// Handler serves the testimonials resource endpoint.
type Handler struct {
	bus *signalbus.Bus
}

func NewHandler(bus *signalbus.Bus) *Handler {
	return &Handler{bus: bus}
}

// List returns all testimonials, newest first.
func (h *Handler) List(c echo.Context) error {
	log := logger.Get().WithComponent("testimonial")

	rows := []Testimonial{}
	if err := config.DB.Select(&rows, `
		SELECT id, name, role, text, rating, created_at, updated_at
		FROM testimonials ORDER BY id DESC
	`); err != nil {
		log.Error("Failed to fetch testimonials", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error loading testimonials.",
			err,
		))
	}

	return apperrors.RespondWithData(c, rows)
}

// Create inserts a testimonial and signals the update.
func (h *Handler) Create(c echo.Context) error {
	log := logger.Get().WithComponent("testimonial")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.Name == "" || req.Text == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Both name and text are required.",
		))
	}

	rating := clampRating(req.Rating.Or(DefaultRating))

	result, err := config.DB.Exec(`
		INSERT INTO testimonials (name, role, text, rating) VALUES (?, ?, ?, ?)
	`, req.Name, req.Role, req.Text, rating)
	if err != nil {
		log.Error("Failed to create testimonial", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving testimonial, please try again.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	var row Testimonial
	if err := config.DB.Get(&row, `
		SELECT id, name, role, text, rating, created_at, updated_at
		FROM testimonials WHERE id = ?
	`, id); err != nil {
		log.Error("Failed to fetch created testimonial", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving testimonial, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelTestimonials, nil)
	log.Info("Testimonial created", logger.Int64("id", row.ID))

	return apperrors.RespondWithCreated(c, row)
}

// Update applies changes to the row identified by id; 404 when missing.
func (h *Handler) Update(c echo.Context) error {
	log := logger.Get().WithComponent("testimonial")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.ID == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"id is required for updates.",
		))
	}

	var exists bool
	if err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM testimonials WHERE id = ?)`, req.ID); err == nil && !exists {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeTestimonialNotFound,
			"Testimonial not found.",
		))
	}

	rating := clampRating(req.Rating.Or(DefaultRating))

	if _, err := config.DB.Exec(`
		UPDATE testimonials
		SET name = ?, role = ?, text = ?, rating = ?, updated_at = NOW()
		WHERE id = ?
	`, req.Name, req.Role, req.Text, rating, req.ID); err != nil {
		log.Error("Failed to update testimonial", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving testimonial, please try again.",
			err,
		))
	}

	var row Testimonial
	if err := config.DB.Get(&row, `
		SELECT id, name, role, text, rating, created_at, updated_at
		FROM testimonials WHERE id = ?
	`, req.ID); err != nil {
		log.Error("Failed to fetch updated testimonial", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving testimonial, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelTestimonials, nil)
	log.Info("Testimonial updated", logger.Int64("id", row.ID))

	return apperrors.RespondWithData(c, row)
}

// Delete removes the row identified by ?id=; deleting a missing row still
// reports success.
func (h *Handler) Delete(c echo.Context) error {
	log := logger.Get().WithComponent("testimonial")

	id := c.QueryParam("id")
	if id == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"id query parameter is required.",
		))
	}

	if _, err := config.DB.Exec(`DELETE FROM testimonials WHERE id = ?`, id); err != nil {
		log.Error("Failed to delete testimonial", err, logger.String("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error deleting testimonial, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelTestimonials, nil)
	log.Info("Testimonial deleted", logger.String("id", id))

	return apperrors.RespondWithMessage(c, "Testimonial deleted successfully.")
}

func clampRating(r int) int {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}

// FetchAll loads every testimonial row; the loader behind the carousel
// region in single-process deployments.
func FetchAll(ctx context.Context) ([]Testimonial, error) {
	rows := []Testimonial{}
	if err := config.DB.SelectContext(ctx, &rows, `
		SELECT id, name, role, text, rating, created_at, updated_at
		FROM testimonials ORDER BY id DESC
	`); err != nil {
		return nil, err
	}
	return rows, nil
}
