package faq

import (
	"context"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
)

// Handler serves the FAQ resource endpoint.
type Handler struct {
	bus *signalbus.Bus
}

func NewHandler(bus *signalbus.Bus) *Handler {
	return &Handler{bus: bus}
}

// List returns all FAQ entries in display order.
func (h *Handler) List(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	rows := []FAQ{}
	if err := config.DB.Select(&rows, `
		SELECT id, question, answer, display_order, created_at, updated_at
		FROM faqs ORDER BY display_order, id
	`); err != nil {
		log.Error("Failed to fetch faqs", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error loading FAQ entries.",
			err,
		))
	}

	return apperrors.RespondWithData(c, rows)
}

// Create inserts an FAQ entry and signals the update.
func (h *Handler) Create(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.Question == "" || req.Answer == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Both question and answer are required.",
		))
	}

	result, err := config.DB.Exec(`
		INSERT INTO faqs (question, answer, display_order) VALUES (?, ?, ?)
	`, req.Question, req.Answer, req.DisplayOrder.Or(0))
	if err != nil {
		log.Error("Failed to create faq", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving FAQ entry, please try again.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	var row FAQ
	if err := config.DB.Get(&row, `
		SELECT id, question, answer, display_order, created_at, updated_at
		FROM faqs WHERE id = ?
	`, id); err != nil {
		log.Error("Failed to fetch created faq", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving FAQ entry, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelFAQ, nil)
	log.Info("FAQ created", logger.Int64("id", row.ID))

	return apperrors.RespondWithCreated(c, row)
}

// Update applies changes to the row identified by id; 404 when missing.
func (h *Handler) Update(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

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
	if err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM faqs WHERE id = ?)`, req.ID); err == nil && !exists {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeFAQNotFound,
			"FAQ entry not found.",
		))
	}

	if _, err := config.DB.Exec(`
		UPDATE faqs
		SET question = ?, answer = ?, display_order = ?, updated_at = NOW()
		WHERE id = ?
	`, req.Question, req.Answer, req.DisplayOrder.Or(0), req.ID); err != nil {
		log.Error("Failed to update faq", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving FAQ entry, please try again.",
			err,
		))
	}

	var row FAQ
	if err := config.DB.Get(&row, `
		SELECT id, question, answer, display_order, created_at, updated_at
		FROM faqs WHERE id = ?
	`, req.ID); err != nil {
		log.Error("Failed to fetch updated faq", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving FAQ entry, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelFAQ, nil)
	log.Info("FAQ updated", logger.Int64("id", row.ID))

	return apperrors.RespondWithData(c, row)
}

// Delete removes the row identified by ?id=; deleting a missing row still
// reports success.
func (h *Handler) Delete(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id := c.QueryParam("id")
	if id == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"id query parameter is required.",
		))
	}

	if _, err := config.DB.Exec(`DELETE FROM faqs WHERE id = ?`, id); err != nil {
		log.Error("Failed to delete faq", err, logger.String("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error deleting FAQ entry, please try again.",
			err,
		))
	}

	h.bus.Emit(context.Background(), signalbus.ChannelFAQ, nil)
	log.Info("FAQ deleted", logger.String("id", id))

	return apperrors.RespondWithMessage(c, "FAQ entry deleted successfully.")
}

// FetchAll loads every FAQ row in display order.
func FetchAll(ctx context.Context) ([]FAQ, error) {
	rows := []FAQ{}
	if err := config.DB.SelectContext(ctx, &rows, `
		SELECT id, question, answer, display_order, created_at, updated_at
		FROM faqs ORDER BY display_order, id
	`); err != nil {
		return nil, err
	}
	return rows, nil
}
