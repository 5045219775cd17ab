package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
	"truckshop-platform/utils"
)

const selectColumns = `id, service_id, title_key, desc_key, title, description,
	price, price_type, image, discount_percent, sale_start_date, sale_end_date,
	created_at, updated_at`

// Handler serves the services resource endpoint. Admin writes emit
// servicesLastUpdated so every open public session refetches the grid.
type Handler struct {
	bus *signalbus.Bus
}

func NewHandler(bus *signalbus.Bus) *Handler {
	return &Handler{bus: bus}
}

// List returns all services, or a single one via ?service_id=. Responses
// carry the derived sale fields.
func (h *Handler) List(c echo.Context) error {
	log := logger.Get().WithComponent("service")
	now := time.Now().UTC()

	if serviceID := c.QueryParam("service_id"); serviceID != "" {
		var svc Service
		err := config.DB.Get(&svc, `SELECT `+selectColumns+` FROM services WHERE service_id = ?`, serviceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.RespondWithError(c, apperrors.NewNotFound(
					apperrors.ErrCodeServiceNotFound,
					"Service not found.",
				))
			}
			log.Error("Failed to fetch service", err, logger.String("service_id", serviceID))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError,
				"Error loading services.",
				err,
			))
		}
		return apperrors.RespondWithData(c, svc.AsView(now))
	}

	services := []Service{}
	if err := config.DB.Select(&services, `SELECT `+selectColumns+` FROM services ORDER BY id`); err != nil {
		log.Error("Failed to fetch services", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error loading services.",
			err,
		))
	}

	views := make([]View, 0, len(services))
	for _, svc := range services {
		views = append(views, svc.AsView(now))
	}
	return apperrors.RespondWithData(c, views)
}

// Create inserts a service and signals the update.
func (h *Handler) Create(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	req := new(UpsertRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	if req.ServiceID == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"service_id is required.",
		))
	}
	if req.PriceType == "" {
		req.PriceType = PriceTypeStarting
	}
	if !validPriceType(req.PriceType) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidFormat,
			"price_type must be one of starting, call, fixed.",
		))
	}

	result, err := config.DB.Exec(`
		INSERT INTO services (service_id, title_key, desc_key, title, description,
			price, price_type, image, discount_percent, sale_start_date, sale_end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, req.ServiceID, req.TitleKey, req.DescKey, req.Title, req.Description,
		req.Price, req.PriceType, req.Image, req.DiscountPercent.Ptr(),
		utils.NormalizeDate(req.SaleStartDate), utils.NormalizeDate(req.SaleEndDate))
	if err != nil {
		log.Error("Failed to create service", err, logger.String("service_id", req.ServiceID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving service, please try again.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	var svc Service
	if err := config.DB.Get(&svc, `SELECT `+selectColumns+` FROM services WHERE id = ?`, id); err != nil {
		log.Error("Failed to fetch created service", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving service, please try again.",
			err,
		))
	}

	h.emit(svc.ServiceID)
	log.Info("Service created", logger.String("service_id", svc.ServiceID))

	return apperrors.RespondWithCreated(c, svc.AsView(time.Now().UTC()))
}

// Update applies a full update to the row identified by id; 404 when the row
// does not exist.
func (h *Handler) Update(c echo.Context) error {
	log := logger.Get().WithComponent("service")

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
	if req.PriceType != "" && !validPriceType(req.PriceType) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidFormat,
			"price_type must be one of starting, call, fixed.",
		))
	}

	result, err := config.DB.Exec(`
		UPDATE services
		SET service_id = ?, title_key = ?, desc_key = ?, title = ?, description = ?,
			price = ?, price_type = ?, image = ?, discount_percent = ?,
			sale_start_date = ?, sale_end_date = ?, updated_at = NOW()
		WHERE id = ?
	`, req.ServiceID, req.TitleKey, req.DescKey, req.Title, req.Description,
		req.Price, req.PriceType, req.Image, req.DiscountPercent.Ptr(),
		utils.NormalizeDate(req.SaleStartDate), utils.NormalizeDate(req.SaleEndDate),
		req.ID)
	if err != nil {
		log.Error("Failed to update service", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving service, please try again.",
			err,
		))
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		var exists bool
		if err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM services WHERE id = ?)`, req.ID); err == nil && !exists {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeServiceNotFound,
				"Service not found.",
			))
		}
	}

	var svc Service
	if err := config.DB.Get(&svc, `SELECT `+selectColumns+` FROM services WHERE id = ?`, req.ID); err != nil {
		log.Error("Failed to fetch updated service", err, logger.Int64("id", req.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error saving service, please try again.",
			err,
		))
	}

	h.emit(svc.ServiceID)
	log.Info("Service updated", logger.String("service_id", svc.ServiceID))

	return apperrors.RespondWithData(c, svc.AsView(time.Now().UTC()))
}

// Delete removes the row identified by ?id=. Deleting a missing row still
// reports success.
func (h *Handler) Delete(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	id := c.QueryParam("id")
	if id == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"id query parameter is required.",
		))
	}

	if _, err := config.DB.Exec(`DELETE FROM services WHERE id = ?`, id); err != nil {
		log.Error("Failed to delete service", err, logger.String("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Error deleting service, please try again.",
			err,
		))
	}

	h.emit("")
	log.Info("Service deleted", logger.String("id", id))

	return apperrors.RespondWithMessage(c, "Service deleted successfully.")
}

func (h *Handler) emit(serviceID string) {
	payload := signalbus.Payload{}
	if serviceID != "" {
		payload["service_id"] = serviceID
	}
	h.bus.Emit(context.Background(), signalbus.ChannelServices, payload)
}

// FetchAll loads every service row; the loader behind the public grid region
// in single-process deployments.
func FetchAll(ctx context.Context) ([]Service, error) {
	services := []Service{}
	if err := config.DB.SelectContext(ctx, &services, `SELECT `+selectColumns+` FROM services ORDER BY id`); err != nil {
		return nil, err
	}
	return services, nil
}
