package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/cmd"
	httpin "github.com/srCochayuyo/censudex-orders-service/internal/adapters/in/http"
	"github.com/srCochayuyo/censudex-orders-service/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	consumer := app.CreateStockValidationConsumer()
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	consumer.Start(consumerCtx)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	e := newWebServer(&app)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	waitForShutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down web server", "error", err)
	}
	jobManager.StopAll()
	stopConsumer()
	if err := consumer.Close(); err != nil {
		logger.Error("failed to close validation consumer", "error", err)
	}
	if err := app.ClosePublisher(); err != nil {
		logger.Error("failed to close event publisher", "error", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                  goDotEnvVariable("HTTP_PORT"),
		DBHost:                    goDotEnvVariable("DB_HOST"),
		DBPort:                    goDotEnvVariable("DB_PORT"),
		DBUser:                    goDotEnvVariable("DB_USER"),
		DBPassword:                goDotEnvVariable("DB_PASSWORD"),
		DBName:                    goDotEnvVariable("DB_NAME"),
		DBSslMode:                 goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                 goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup:        goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaOrderCreatedTopic:    goDotEnvVariable("KAFKA_ORDER_CREATED_TOPIC"),
		KafkaStockValidationTopic: goDotEnvVariable("KAFKA_STOCK_VALIDATION_TOPIC"),
		KafkaConsumerWorkers:      goDotEnvIntVariable("KAFKA_CONSUMER_WORKERS"),
		SendGridAPIKey:            goDotEnvVariable("SENDGRID_API_KEY"),
		SendGridFromName:          goDotEnvVariable("SENDGRID_FROM_NAME"),
		SendGridFromEmail:         goDotEnvVariable("SENDGRID_FROM_EMAIL"),
		ValidationTimeoutMinutes:  goDotEnvIntVariable("VALIDATION_TIMEOUT_MINUTES"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer", key)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	// TranslateError maps the driver's unique-violation to
	// gorm.ErrDuplicatedKey, which the repository relies on for order
	// number collisions.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStateCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderStateQueryHandler(),
		app.CreateGetUserOrdersQueryHandler(),
		app.CreateGetAllOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}

func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
