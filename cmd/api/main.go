package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifehub-assistant/config"
	_ "lifehub-assistant/docs" // Swagger docs
	httpDelivery "lifehub-assistant/internal/command/delivery/http"
	tgDelivery "lifehub-assistant/internal/command/delivery/telegram"
	cmdQdrant "lifehub-assistant/internal/command/repository/qdrant"
	cmdRest "lifehub-assistant/internal/command/repository/rest"
	cmdUsecase "lifehub-assistant/internal/command/usecase"
	"lifehub-assistant/internal/httpserver"
	interpUsecase "lifehub-assistant/internal/interpreter/usecase"
	"lifehub-assistant/internal/middleware"
	"lifehub-assistant/pkg/datemath"
	"lifehub-assistant/pkg/gcalendar"
	"lifehub-assistant/pkg/llmprovider"
	"lifehub-assistant/pkg/log"
	pkgQdrant "lifehub-assistant/pkg/qdrant"
	"lifehub-assistant/pkg/telegram"
	"lifehub-assistant/pkg/voyage"
)

// @title       LifeHub Assistant API
// @description Natural-language command interpreter for a multi-domain personal productivity app.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting LifeHub Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Store URL: %s", cfg.Store.URL)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d in chain", len(providers))

	// 4. Interpreter
	timezone := cfg.Interpreter.Timezone
	dateMathParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		timezone = "UTC"
		dateMathParser, _ = datemath.NewParser(timezone)
	}
	interpUC := interpUsecase.New(logger, llmManager, dateMathParser)

	// 5. Store repository
	storeClient := cmdRest.NewClient(cfg.Store.URL, cfg.Store.AccessToken)
	storeRepo := cmdRest.New(storeClient, cfg.Store.ExternalURL, logger)

	// 6. Knowledge index (Qdrant + Voyage embeddings)
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	exists, err := qdrantClient.CollectionExists(ctx, cfg.Qdrant.CollectionName)
	if err != nil {
		logger.Warnf(ctx, "Qdrant collection check: %v", err)
	}
	if !exists {
		if err := qdrantClient.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
			Name: cfg.Qdrant.CollectionName,
			Vectors: pkgQdrant.VectorConfig{
				Size:     cfg.Qdrant.VectorSize,
				Distance: "Cosine",
			},
		}); err != nil {
			logger.Warnf(ctx, "Qdrant collection setup: %v", err)
		}
	}

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Voyage client: ", err)
		return
	}
	knowledgeRepo := cmdQdrant.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, logger)

	// 7. Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
			calendarClient = nil
		} else {
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	// 8. Command executor
	executorUC := cmdUsecase.New(logger, storeRepo, knowledgeRepo, calendarClient, cfg.GoogleCalendar.CalendarID, timezone)

	// 9. Delivery handlers
	commandHandler := httpDelivery.New(logger, interpUC, executorUC)

	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, interpUC, executorUC, telegramBot)

		if cmdErr := telegramBot.SetMyCommands([]telegram.BotCommand{
			{Command: "start", Description: "What this bot does"},
			{Command: "help", Description: "Command examples for every domain"},
		}); cmdErr != nil {
			logger.Warnf(ctx, "Failed to register Telegram command menu: %v", cmdErr)
		}

		// Register webhook: auto-detect ngrok or fall back to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram delivery skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      middleware.New(logger, cfg.RateLimit),
		CommandHandler:  commandHandler,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDuration parses a config duration string, falling back on a default.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
