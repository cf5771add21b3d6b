package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"orderflow/cmd"
	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(app.CreateDeactivateExpiredCouponsCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		TaxRatePercent: goDotEnvVariable("TAX_RATE_PERCENT"),
		ShippingFee:    goDotEnvVariable("SHIPPING_FEE"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(httpadapter.ServerParams{
		CreateOrderHandler:         app.CreateCreateOrderCommandHandler(),
		SetStatusHandler:           app.CreateSetStatusCommandHandler(),
		RequestCancellationHandler: app.CreateRequestCancellationCommandHandler(),
		DecideCancellationHandler:  app.CreateDecideCancellationCommandHandler(),
		AssignCourierHandler:       app.CreateAssignCourierCommandHandler(),
		RecordHubArrivalHandler:    app.CreateRecordHubArrivalCommandHandler(),
		RecordAttemptHandler:       app.CreateRecordAttemptCommandHandler(),
		RecordDeliveryHandler:      app.CreateRecordDeliveryCommandHandler(),
		AddMessageHandler:          app.CreateAddMessageCommandHandler(),
		PushLocationHandler:        app.CreatePushLocationCommandHandler(),
		CreateCouponHandler:        app.CreateCreateCouponCommandHandler(),
		GetOrderHandler:            app.CreateGetOrderQueryHandler(),
		ListActiveOrdersHandler:    app.CreateListActiveOrdersQueryHandler(),
		ListMessagesHandler:        app.CreateListMessagesQueryHandler(),
		LatestLocationHandler:      app.CreateLatestLocationQueryHandler(),
		ApplyCouponHandler:         app.CreateApplyCouponQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
