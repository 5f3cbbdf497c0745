package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"dispatch/cmd"
	_ "dispatch/docs"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/requesterrepo"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//	@title		Dispatch Service API
//	@version	1.0
//	@BasePath	/

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to compose application: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:                   envOrDefault("HTTP_PORT", "8080"),
		AdminIDs:                   parseAdminIDs(os.Getenv("ADMIN_IDS")),
		SessionTTL:                 parseDuration("SESSION_TTL", 30*time.Minute),
		DisconnectReminderInterval: parseDuration("DISCONNECT_REMINDER_INTERVAL", time.Minute),
		PendingOrderThreshold:      parseDuration("PENDING_ORDER_THRESHOLD", 10*time.Minute),
		ChannelBridgeURL:           os.Getenv("CHANNEL_BRIDGE_URL"),
		DBHost:                     os.Getenv("DB_HOST"),
		DBPort:                     os.Getenv("DB_PORT"),
		DBUser:                     os.Getenv("DB_USER"),
		DBPassword:                 os.Getenv("DB_PASSWORD"),
		DBName:                     os.Getenv("DB_NAME"),
		DBSslMode:                  os.Getenv("DB_SSLMODE"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseAdminIDs reads the comma separated roster; the first id becomes
// the primary admin.
func parseAdminIDs(raw string) []kernel.ActorID {
	if raw == "" {
		log.Fatalf("ADMIN_IDS is required")
	}

	var ids []kernel.ActorID
	for _, part := range strings.Split(raw, ",") {
		id, err := kernel.ParseActorID(strings.TrimSpace(part))
		if err != nil {
			log.Fatalf("Invalid admin id %q: %v", part, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, raw, err)
	}
	return d
}

func openDatabase(configs cmd.Config) *gorm.DB {
	if !configs.UseDatabase() {
		return nil
	}

	db, err := gorm.Open(postgresdriver.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&requesterrepo.RequesterDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
