package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
	"truckshop-platform/pkg/signalbus"
	"truckshop-platform/routes"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/main.go [server|site]")
		os.Exit(1)
	}

	config.InitConfig()
	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "truckshop-platform",
	})

	switch os.Args[1] {
	case "server":
		startServer()
	case "site":
		startSite()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

// newSignalBus builds the update signal bus. With Redis configured the
// bus spans every process pointed at the same instance; without it
// signals stay in-process, which is all a single-binary deployment
// needs.
func newSignalBus() *signalbus.Bus {
	config.InitRedis()
	if config.RedisClient != nil {
		return signalbus.New(signalbus.NewRedisStore(config.RedisClient))
	}
	return signalbus.New(signalbus.NewMemoryStore())
}

// startServer runs the API process: database, migrations, admin and
// public endpoints.
func startServer() {
	log := logger.Get()

	config.InitDB()
	defer config.CloseDB()
	if err := config.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	bus := newSignalBus()
	defer config.CloseRedis()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(log)
	e.Use(logger.RequestLoggerMiddleware(log))
	e.Use(logger.RecoveryMiddleware(log))
	origin := viper.GetString("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e, bus)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("Starting API server", logger.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server stopped", err)
	}
}
