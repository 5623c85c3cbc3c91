package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"packing/cmd"
	httpserver "packing/internal/adapters/in/http"
	"packing/internal/adapters/out/postgres/holdrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := root.CreateJobManager(configs)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	syncClient, err := root.CreateSyncStreamClient(configs.SyncStreamURL)
	if err != nil {
		log.Fatalf("Failed to create sync stream client: %v", err)
	}
	syncClient.Start()
	defer syncClient.Close()

	startWebServer(&root, configs.HTTPPort)
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
		BillingBaseURL: goDotEnvVariable("BILLING_BASE_URL"),
		SyncStreamURL:  goDotEnvVariable("SYNC_STREAM_URL"),
		SessionTTL:     parseSessionTTL(goDotEnvVariable("SESSION_TTL")),
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

func parseSessionTTL(value string) time.Duration {
	ttl, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL %q: %v", value, err)
	}
	return ttl
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&holdrepo.HoldDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpserver.NewServer(
		root.CreateStartSessionCommandHandler(),
		root.CreateAbandonSessionCommandHandler(),
		root.CreateCompleteSessionCommandHandler(),
		root.CreateCreateContainerCommandHandler(),
		root.CreateCompleteContainerCommandHandler(),
		root.CreateRemoveContainerCommandHandler(),
		root.CreateMarkContainerLabeledCommandHandler(),
		root.CreateAssignItemCommandHandler(),
		root.CreateFillRemainderCommandHandler(),
		root.CreateUnassignItemCommandHandler(),
		root.CreateReportIssueCommandHandler(),
		root.CreateSendToReviewCommandHandler(),
		root.CreateHoldOrderCommandHandler(),
		root.CreateProceedWithGroupCommandHandler(),
		root.CreateGetSessionStateQueryHandler(),
		root.CreateGetContainerManifestsQueryHandler(),
		root.CreateGetHeldOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
