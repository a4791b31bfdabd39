package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cycleinsights/internal/api"
	"github.com/terraincognita07/cycleinsights/internal/db"
	"github.com/terraincognita07/cycleinsights/internal/i18n"
	"github.com/terraincognita07/cycleinsights/internal/services"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder loop",
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := loadCommandEnv(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()
			return serve(rt)
		},
	}
}

func serve(rt *commandEnv) error {
	secretKey, err := rt.config.ResolveSecretKey()
	if err != nil {
		return err
	}

	i18nManager, err := i18n.NewManager(rt.config.DefaultLanguage)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(rt.database, secretKey, rt.location, i18nManager, rt.config.CookieSecure)
	if err != nil {
		return err
	}
	app := newServerApp(handler)

	repositories := db.NewRepositories(rt.database)
	configured, err := services.NewSetupService(repositories.Users).OwnerConfigured()
	if err != nil {
		return err
	}
	if !configured {
		log.Printf("no owner profile yet, run: cycleinsights create-owner --email <address>")
	}

	notifier := services.NewNotificationService(repositories.Users, services.NotificationConfig{
		BotToken:           rt.config.Telegram.BotToken,
		ChatID:             rt.config.Telegram.ChatID,
		PeriodReminderDays: rt.config.Telegram.PeriodReminderDays,
		FertilityReminder:  rt.config.Telegram.NotifyFertility,
	}, rt.location)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	notifier.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("CycleInsights listening on http://0.0.0.0:%s (db: %s, tz: %s)", rt.config.Port, rt.config.DBPath, rt.location.String())
	return app.Listen(":" + rt.config.Port)
}

func newServerApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "CycleInsights",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app
}
