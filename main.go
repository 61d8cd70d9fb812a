package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lanspeech/config"
	"lanspeech/cron"
	"lanspeech/database/repository/ledger"
	"lanspeech/database/repository/practicestore"
	"lanspeech/handlers"
	"lanspeech/middleware"
	"lanspeech/routes"
	"lanspeech/services/meeting"
	"lanspeech/services/practice"
	"lanspeech/services/scheduling"
	"lanspeech/services/speech"
	"lanspeech/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitLedgerCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Scheduling and meeting services, with explicit dependencies.
	bookingLedger := ledger.NewRedisBookingLedger(utils.GetLedgerCacheClient(), 0)
	calendarService := scheduling.NewCalendarService(bookingLedger, nil, nil)
	calendarService.AvailabilityRate = config.AppConfig.AvailabilityRate
	meetingService := meeting.NewMeetingService(config.AppConfig.MeetHost, nil)

	// Generation provider; an empty key leaves the engine on the fallback path.
	var generator practice.TextGenerator
	if config.AppConfig.GeminiAPIKey != "" {
		g, err := practice.NewGeminiGenerator(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize generation provider: %v", err)
		}
		generator = g
	} else {
		logger.Sugar().Warn("main: no generation provider configured, practice sessions use canned responses")
	}

	newEngine := func() practice.Engine {
		return practice.NewEngine(generator, nil, nil)
	}
	newRecognizer := func() speech.Recognizer {
		return speech.NewGoogleRecognizer(config.AppConfig.GoogleServiceAccountFile, "en-US")
	}

	summaryStore := practicestore.NewRedisSummaryStore(utils.GetCacheClient(), 30*24*time.Hour)
	practiceHandler := handlers.NewPracticeHandler(newEngine, newRecognizer, speech.NoopSynthesizer{}, summaryStore)

	// Reminder queue and worker.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queueClient.Close()
	cron.InitReminderWorker()

	bookingHandler := handlers.NewBookingHandler(calendarService, meetingService, queueClient)
	meetingHandler := handlers.NewMeetingHandler(meetingService)

	handlerBundle := &handlers.HandlerBundle{
		Practice: practiceHandler,
		Booking:  bookingHandler,
		Meeting:  meetingHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
