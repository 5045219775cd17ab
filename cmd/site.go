package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"truckshop-platform/config"
	"truckshop-platform/domain/content"
	"truckshop-platform/domain/faq"
	"truckshop-platform/domain/service"
	"truckshop-platform/domain/setting"
	"truckshop-platform/domain/testimonial"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
	"truckshop-platform/pkg/view"
)

// siteRegions bundles the self-refreshing datasets a site process
// serves. Each region subscribes to its update channel, so an admin
// save against the API process propagates here through the shared
// signal store without a redeploy.
type siteRegions struct {
	services     *view.Region[[]service.View]
	testimonials *view.Region[[]testimonial.Testimonial]
	faqs         *view.Region[[]faq.FAQ]
	contents     *view.Region[map[string]string]
	settings     *view.Region[[]setting.Setting]
}

// startSite runs a site process: no database, only the API fetcher, the
// signal bus and the page-region cache. Several of these can run behind
// a load balancer; each keeps itself in sync.
func startSite() {
	log := logger.Get()

	apiBase := viper.GetString("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}
	fetcher := view.NewFetcher(apiBase)

	bus := newSignalBus()
	defer config.CloseRedis()

	ctx := context.Background()
	defaultViews := make([]service.View, 0)
	for _, svc := range service.DefaultServices() {
		defaultViews = append(defaultViews, svc.AsView(time.Now().UTC()))
	}

	regions := &siteRegions{
		services: view.NewRegion("services",
			view.TypedFetch[[]service.View](fetcher, "/api/services"),
			view.WithFallback[[]service.View](defaultViews),
		).Start(ctx, bus, signalbus.ChannelServices),

		testimonials: view.NewRegion("testimonials",
			view.TypedFetch[[]testimonial.Testimonial](fetcher, "/api/testimonials"),
			view.WithFallback[[]testimonial.Testimonial](testimonial.DefaultTestimonials()),
		).Start(ctx, bus, signalbus.ChannelTestimonials),

		faqs: view.NewRegion("faq",
			view.TypedFetch[[]faq.FAQ](fetcher, "/api/faq"),
			view.WithFallback[[]faq.FAQ](faq.DefaultFAQs()),
		).Start(ctx, bus, signalbus.ChannelFAQ),

		contents: view.NewRegion("content",
			view.TypedFetch[map[string]string](fetcher, "/api/content/map"),
			view.WithFallback[map[string]string](content.Defaults()),
		).Start(ctx, bus, signalbus.ChannelContent),

		settings: view.NewRegion("settings",
			view.TypedFetch[[]setting.Setting](fetcher, "/api/settings"),
		).Start(ctx, bus, signalbus.ChannelSettings, signalbus.ChannelTimezone),
	}
	defer regions.close()

	e := echo.New()
	e.HideBanner = true
	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))

	e.GET("/site/services", regions.serveServices)
	e.GET("/site/testimonials", regions.serveTestimonials)
	e.GET("/site/faq", regions.serveFAQ)
	e.GET("/site/content", regions.serveContent)
	e.GET("/site/settings", regions.serveSettings)
	e.GET("/site/footer", regions.serveFooter)

	port := viper.GetString("SITE_PORT")
	if port == "" {
		port = "8081"
	}
	log.Info("Starting site process", logger.String("port", port), logger.String("api", apiBase))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Site process stopped", err)
	}
}

func (r *siteRegions) close() {
	r.services.Close()
	r.testimonials.Close()
	r.faqs.Close()
	r.contents.Close()
	r.settings.Close()
}

type regionResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	FetchedAt time.Time   `json:"fetched_at"`
}

func respondRegion(c echo.Context, data interface{}, fetchedAt time.Time) error {
	return c.JSON(http.StatusOK, regionResponse{Success: true, Data: data, FetchedAt: fetchedAt})
}

func (r *siteRegions) serveServices(c echo.Context) error {
	data, at := r.services.Snapshot()
	return respondRegion(c, data, at)
}

func (r *siteRegions) serveTestimonials(c echo.Context) error {
	data, at := r.testimonials.Snapshot()
	return respondRegion(c, data, at)
}

func (r *siteRegions) serveFAQ(c echo.Context) error {
	data, at := r.faqs.Snapshot()
	return respondRegion(c, data, at)
}

// serveContent returns the flattened content map. The API merges over
// the built-in copy before serving, so a page key never renders blank.
func (r *siteRegions) serveContent(c echo.Context) error {
	flat, at := r.contents.Snapshot()
	return respondRegion(c, flat, at)
}

func (r *siteRegions) serveSettings(c echo.Context) error {
	out, at := r.settingsMap()
	return respondRegion(c, out, at)
}

// footerResponse is the footer widget state: the shop-local clock and
// the seasonal snow toggle.
type footerResponse struct {
	Timezone   string `json:"timezone"`
	LocalTime  string `json:"local_time"`
	SnowEffect bool   `json:"snow_effect"`
}

// serveFooter renders the footer widget from the settings region. An
// unknown timezone name falls back to UTC rather than erroring: the
// clock keeps ticking while the admin fixes the setting.
func (r *siteRegions) serveFooter(c echo.Context) error {
	settings, at := r.settingsMap()

	tz := settings[setting.KeyTimezone]
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	return respondRegion(c, footerResponse{
		Timezone:   tz,
		LocalTime:  time.Now().In(loc).Format("3:04 PM"),
		SnowEffect: settings[setting.KeySnowEffect] == "true",
	}, at)
}

func (r *siteRegions) settingsMap() (map[string]string, time.Time) {
	rows, at := r.settings.Snapshot()
	out := map[string]string{
		setting.KeyTimezone:   "America/Chicago",
		setting.KeySnowEffect: "false",
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, at
}
