package routes

import (
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/domain/auth"
	"truckshop-platform/domain/bootstrap"
	"truckshop-platform/domain/content"
	"truckshop-platform/domain/faq"
	"truckshop-platform/domain/health"
	"truckshop-platform/domain/lead"
	"truckshop-platform/domain/service"
	"truckshop-platform/domain/setting"
	"truckshop-platform/domain/testimonial"
	"truckshop-platform/middleware"
	"truckshop-platform/pkg/signalbus"
)

// RegisterRoutes wires the public site API and the admin API onto e.
// Public reads carry no auth; admin writes sit behind the JWT session
// middleware and emit update signals through bus.
func RegisterRoutes(e *echo.Echo, bus *signalbus.Bus) {
	contentCache := content.NewCache(content.FetchMap)
	contentCache.Bind(bus)

	serviceHandler := service.NewHandler(bus)
	testimonialHandler := testimonial.NewHandler(bus)
	faqHandler := faq.NewHandler(bus)
	contentHandler := content.NewHandler(bus, contentCache)
	settingHandler := setting.NewHandler(bus)
	leadHandler := lead.NewHandler(lead.NewTelegramSender())
	bootstrapHandler := bootstrap.NewHandler(contentCache)

	// Health probes
	e.GET("/health", health.HealthHandler)
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/stats", health.StatsHandler)

	// Public site data
	api := e.Group("/api")
	api.GET("/bootstrap", bootstrapHandler.Get)
	api.GET("/services", serviceHandler.List)
	api.GET("/testimonials", testimonialHandler.List)
	api.GET("/faq", faqHandler.List)
	api.GET("/content", contentHandler.List)
	api.GET("/content/map", contentHandler.Map)
	api.GET("/settings", settingHandler.List)

	// Lead capture, rate limited per IP
	leadLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests: 10,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:lead:",
	})
	api.POST("/lead/quote", leadHandler.SubmitQuote, leadLimiter)
	api.POST("/lead/contact", leadHandler.SubmitContact, leadLimiter)

	// Admin auth
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests: 5,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit:login:",
	})
	e.POST("/api/admin/login", auth.LoginHandler, loginLimiter)

	// Admin content management. Updates carry the row id in the body;
	// deletes take ?id= and are idempotent.
	admin := e.Group("/api/admin", middleware.JWTMiddleware)
	admin.POST("/services", serviceHandler.Create)
	admin.PUT("/services", serviceHandler.Update)
	admin.DELETE("/services", serviceHandler.Delete)

	admin.POST("/testimonials", testimonialHandler.Create)
	admin.PUT("/testimonials", testimonialHandler.Update)
	admin.DELETE("/testimonials", testimonialHandler.Delete)

	admin.POST("/faq", faqHandler.Create)
	admin.PUT("/faq", faqHandler.Update)
	admin.DELETE("/faq", faqHandler.Delete)

	admin.POST("/content", contentHandler.Upsert)
	admin.PUT("/settings", settingHandler.Upsert)
}
