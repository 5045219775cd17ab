// Package bootstrap serves the initial page load: every dataset the site
// needs to render, in one round trip.
package bootstrap

import (
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/domain/content"
	"truckshop-platform/domain/faq"
	"truckshop-platform/domain/service"
	"truckshop-platform/domain/setting"
	"truckshop-platform/domain/testimonial"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
)

// Payload is the combined dataset for a first render.
type Payload struct {
	Services     []service.View            `json:"services"`
	Testimonials []testimonial.Testimonial `json:"testimonials"`
	FAQs         []faq.FAQ                 `json:"faqs"`
	Content      map[string]string         `json:"content"`
	Settings     map[string]string         `json:"settings"`
}

// Handler serves GET /api/bootstrap.
type Handler struct {
	cache *content.Cache
}

func NewHandler(cache *content.Cache) *Handler {
	return &Handler{cache: cache}
}

// Get assembles the full payload. Any row store failure fails the whole
// request; callers fall back to their per-resource fetches.
func (h *Handler) Get(c echo.Context) error {
	log := logger.Get().WithComponent("bootstrap")
	ctx := c.Request().Context()
	now := time.Now().UTC()

	services, err := service.FetchAll(ctx)
	if err != nil {
		log.Error("Failed to load services", err)
		return dbError(c, err)
	}
	views := make([]service.View, 0, len(services))
	for _, svc := range services {
		views = append(views, svc.AsView(now))
	}

	testimonials, err := testimonial.FetchAll(ctx)
	if err != nil {
		log.Error("Failed to load testimonials", err)
		return dbError(c, err)
	}

	faqs, err := faq.FetchAll(ctx)
	if err != nil {
		log.Error("Failed to load FAQ entries", err)
		return dbError(c, err)
	}

	settings, err := setting.FetchAll(ctx)
	if err != nil {
		log.Error("Failed to load settings", err)
		return dbError(c, err)
	}

	return apperrors.RespondWithData(c, Payload{
		Services:     views,
		Testimonials: testimonials,
		FAQs:         faqs,
		Content:      h.cache.Get(ctx),
		Settings:     settings,
	})
}

func dbError(c echo.Context, err error) error {
	return apperrors.RespondWithError(c, apperrors.NewInternal(
		apperrors.ErrCodeDatabaseError,
		"Error loading site data.",
		err,
	))
}
