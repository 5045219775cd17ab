package lead

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
)

// Handler serves the public lead capture endpoints. Every submission is
// persisted before delivery is attempted, so a Telegram outage never
// drops an enquiry.
type Handler struct {
	sender *TelegramSender
}

func NewHandler(sender *TelegramSender) *Handler {
	return &Handler{sender: sender}
}

// SubmitQuote handles POST /api/lead/quote.
func (h *Handler) SubmitQuote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request body.",
		))
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Phone == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Name and phone are required.",
		))
	}

	row := Lead{
		ID:        uuid.New().String(),
		Kind:      KindQuote,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
		TruckInfo: strings.TrimSpace(req.TruckInfo),
		Message:   strings.TrimSpace(req.Message),
	}
	return h.deliver(c, row, "New Quote Request", FormatQuote(req))
}

// SubmitContact handles POST /api/lead/contact.
func (h *Handler) SubmitContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request body.",
		))
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Phone == "" || req.Message == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Name, phone and message are required.",
		))
	}

	row := Lead{
		ID:      uuid.New().String(),
		Kind:    KindContact,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   strings.TrimSpace(req.Email),
		Message: req.Message,
	}
	return h.deliver(c, row, "New Contact Message", FormatContact(req))
}

// deliver persists the lead, pushes it to Telegram and mails the
// optional copy. The stored row is the source of truth; the delivered
// flag records whether Telegram accepted it.
func (h *Handler) deliver(c echo.Context, row Lead, subject, text string) error {
	log := logger.Get().WithComponent("lead")

	_, err := config.DB.Exec(`
		INSERT INTO leads (id, kind, name, phone, email, truck_info, message, delivered)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, row.ID, row.Kind, row.Name, row.Phone, row.Email, row.TruckInfo, row.Message)
	if err != nil {
		log.Error("Failed to store lead", err, logger.LeadID(row.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Failed to record your request. Please call us directly.",
			err,
		))
	}

	if err := h.sender.Send(text); err != nil {
		log.Error("Failed to deliver lead", err, logger.LeadID(row.ID))
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.NewBadGateway(
				apperrors.ErrCodeLeadDeliveryFailed,
				"Failed to deliver your request. Please call us directly.",
				err,
			)
		}
		return apperrors.RespondWithError(c, appErr)
	}

	if _, err := config.DB.Exec(`UPDATE leads SET delivered = 1 WHERE id = ?`, row.ID); err != nil {
		log.Warn("Failed to mark lead delivered", logger.LeadID(row.ID), logger.Err(err))
	}

	go sendEmailCopy(subject, text)

	log.Info("Lead captured", logger.LeadID(row.ID), logger.String("kind", row.Kind))
	return apperrors.RespondWithMessage(c, "Thank you! We will get back to you shortly.")
}
