package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"chipdrop/cmd"
	"chipdrop/internal/adapters/in/http"
	"chipdrop/internal/adapters/out/postgres/accountrepo"
	"chipdrop/internal/adapters/out/postgres/contactrepo"
	"chipdrop/internal/adapters/out/postgres/deliveryrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfigs(logger)

	db, err := openDatabase(config)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err = migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	root := cmd.NewCompositionRoot(config, db, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("job startup failed: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true

	server := http.NewServer(
		root.CreateCreateDeliveryCommandHandler(),
		root.CreateUpdateDeliveryCommandHandler(),
		root.CreateUpdateDeliveryStatusCommandHandler(),
		root.CreateAcceptDeliveryRequestCommandHandler(),
		root.CreateAddRecipientCommandHandler(),
		root.CreateRemoveRecipientCommandHandler(),
		root.CreateDeleteDeliveryCommandHandler(),
		root.CreateExpireDeliveriesCommandHandler(),
		root.CreateGetDeliveryQueryHandler(),
		root.CreateGetPendingDeliveriesQueryHandler(),
		root.CreateGetCompanyDeliveriesQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil {
			logger.Info("http server stopped", "error", startErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),

		ExpiryWarnAfter:   time.Duration(envInt("EXPIRY_WARN_AFTER_HOURS", 72)) * time.Hour,
		ExpiryExpireAfter: time.Duration(envInt("EXPIRY_EXPIRE_AFTER_HOURS", 168)) * time.Hour,
		ExpiryCron:        envOrDefault("EXPIRY_CRON", "*/10 * * * *"),

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		SMSGatewayURL:    os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewayAPIKey: os.Getenv("SMS_GATEWAY_API_KEY"),

		NotifyAcceptBaseURL: os.Getenv("NOTIFY_ACCEPT_BASE_URL"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.RecipientDTO{},
		&deliveryrepo.ProductDTO{},
		&accountrepo.AccountDTO{},
		&contactrepo.ContactDTO{},
	)
}
