package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"agendabot/config"
	"agendabot/cron"
	"agendabot/database"
	bookingRepo "agendabot/database/repository/booking"
	conversationRepo "agendabot/database/repository/conversation"
	settingsRepo "agendabot/database/repository/settings"
	"agendabot/handlers"
	"agendabot/middleware"
	"agendabot/routes"
	"agendabot/services/chat"
	"agendabot/services/responder"
	"agendabot/services/schedule"
	"agendabot/utils"
)

func main() {
	cfg := config.Load()
	utils.InitializeLogger(cfg.IsProduction())
	logger := utils.GetLogger()
	defer logger.Sync()

	var (
		bookings      bookingRepo.BookingRepository
		settings      settingsRepo.SettingsRepository
		conversations conversationRepo.ConversationRepository
		ctxStore      *responder.RedisContextStore
		reminders     chat.ReminderScheduler
	)

	if cfg.DatabaseURL == "memory" {
		// Datastore-less mode for local experiments; everything resets on
		// restart.
		logger.Warn("main: DATABASE_URL=memory, running with in-memory stores")
		bookings = bookingRepo.NewMemoryBookingRepo()
		settings = settingsRepo.NewMemorySettingsRepo()
		conversations = conversationRepo.NewMemoryConversationRepo()
	} else {
		client, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()

		db := client.Database(cfg.DatabaseName)
		bookings = bookingRepo.NewMongoBookingRepo(db)
		settings = settingsRepo.NewMongoSettingsRepo(db)
		conversations = conversationRepo.NewMongoConversationRepo(db)

		contextClient := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisContextDB)
		ctxStore = responder.NewRedisContextStore(contextClient, 30*time.Minute)

		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisReminderDB,
		}
		reminders = cron.NewReminderQueue(redisOpt)
		cron.InitReminderWorker(redisOpt, cron.NewWebhookSender(cfg.TransportWebhookURL))
	}

	typed := settingsRepo.Typed{Repo: settings}

	scheduler := &schedule.DefaultSchedulingService{
		Repo:     bookings,
		Settings: typed,
	}

	generator, err := responder.NewGeminiGenerator(cfg.GeminiAPIKey, ctxStore)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	chatService := &chat.DefaultChatService{
		Guard:     chat.NewDedupGuard(chat.DefaultGuardCapacity),
		Ledger:    conversations,
		Scheduler: scheduler,
		Settings:  typed,
		Generator: generator,
		Reminders: reminders,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	bundle := &routes.Bundle{
		Auth:         handlers.NewAuthHandler([]byte(cfg.JWTSecret), cfg.AdminPasswordHash),
		Admin:        handlers.NewAdminHandler(settings, bookings, conversations, logger),
		Booking:      handlers.NewBookingHandler(scheduler, bookings, logger),
		Conversation: handlers.NewConversationHandler(conversations, logger),
		Chat:         handlers.NewChatHandler(chatService, logger),
	}
	routes.Register(router, bundle, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
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
