package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/kmahrous/salesbot/internal/api/router"
	"github.com/kmahrous/salesbot/internal/catalog"
	appconfig "github.com/kmahrous/salesbot/internal/config"
	"github.com/kmahrous/salesbot/internal/conversation"
	"github.com/kmahrous/salesbot/internal/http/handlers"
	"github.com/kmahrous/salesbot/internal/messaging"
	"github.com/kmahrous/salesbot/internal/observability/metrics"
	"github.com/kmahrous/salesbot/internal/session"
	"github.com/kmahrous/salesbot/internal/transcript"
	"github.com/kmahrous/salesbot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salesbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Session store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	sessionStore := session.NewRedisStore(redisClient, cfg.SessionTTL, nil)

	// Catalog
	var source catalog.Source
	if cfg.CatalogSheetID != "" {
		sheetSource, err := catalog.NewSheetsSource(cfg.CatalogSheetID, cfg.CatalogSheetRange, cfg.GoogleAPIKey)
		if err != nil {
			logger.Error("failed to configure sheets catalog source", "error", err)
			os.Exit(1)
		}
		source = sheetSource
	} else {
		source = catalog.NewFileSource(cfg.CatalogFile)
	}
	cat, err := catalog.New(ctx, source)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "offers", len(cat.Offers()))
	go refreshCatalog(ctx, cat, cfg.CatalogRefreshInterval, logger)

	botMetrics := metrics.NewBotMetrics(nil)

	// Optional collaborators
	opts := []conversation.ServiceOption{
		conversation.WithMetrics(botMetrics),
		conversation.WithHistoryLimit(cfg.HistoryLimit),
	}

	if cfg.GeminiAPIKey != "" {
		assistant, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer assistant.Close()
		opts = append(opts, conversation.WithAssistant(assistant, cfg.AssistantTimeout))
	} else {
		logger.Warn("GEMINI_API_KEY not set, running with scripted replies only")
	}

	if cfg.TwilioAccountSID != "" {
		sender, err := messaging.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger)
		if err != nil {
			logger.Error("failed to create twilio sender", "error", err)
			os.Exit(1)
		}
		opts = append(opts, conversation.WithMessenger(sender))
	} else {
		logger.Warn("TWILIO_ACCOUNT_SID not set, replies will not be delivered")
	}

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store := transcript.NewStore(db)
		if err := store.Init(ctx); err != nil {
			logger.Error("failed to init transcript store", "error", err)
			os.Exit(1)
		}
		opts = append(opts, conversation.WithRecorder(store))
	}

	svc := conversation.NewService(
		sessionStore,
		cat,
		conversation.NewThrottleGate(cfg.ReplyThrottle),
		logger,
		opts...,
	)

	buffer := messaging.NewBuffer(cfg.BufferQuiet, func(ctx context.Context, msg conversation.InboundMessage) {
		if _, err := svc.ProcessInbound(ctx, msg); err != nil {
			logger.Error("failed to process inbound message", "customer", msg.From, "error", err)
		}
	}, logger)

	whatsappHandler := handlers.NewWhatsAppHandler(buffer, botMetrics, logger)

	r := router.New(&router.Config{
		Logger:          logger,
		WhatsAppHandler: whatsappHandler,
		MetricsHandler:  promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := buffer.Shutdown(shutdownCtx); err != nil {
		logger.Error("buffer did not drain in time", "error", err)
	}

	logger.Info("server stopped")
}

// refreshCatalog periodically reloads the price list so spreadsheet edits
// reach the bot without a restart.
func refreshCatalog(ctx context.Context, cat *catalog.Catalog, interval time.Duration, logger *logging.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := cat.Refresh(ctx); err != nil {
				logger.Warn("catalog refresh failed, keeping previous snapshot", "error", err)
				continue
			}
			logger.Info("catalog refreshed", "offers", len(cat.Offers()))
		}
	}
}
