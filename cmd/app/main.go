package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/in/http"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/cache"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/logger"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/memstore"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/notifier"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/adapters/out/postgres"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/config"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/ports/out"
	"github.com/cabinet-rdv/clinic-booking-engine/internal/core/services/availability_service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Локальный .env, в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger := logger.NewConsoleLogger(cfg.Location)
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"storageBackend":  cfg.Storage.Backend,
		"notifierEnabled": cfg.Notifier.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Статичная конфигурация календаря, без нее генерация слотов невозможна
	calendar, err := config.LoadCalendarConfig(cfg.Calendar.Path)
	if err != nil {
		log.Error("app.calendar.load_failed", out.LogFields{
			"path":  cfg.Calendar.Path,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	log.Info("app.calendar.loaded", out.LogFields{
		"rules":      len(calendar.Rules),
		"holidays":   len(calendar.Holidays),
		"validUntil": calendar.ValidUntil.Key(),
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Выбор бэкенда хранилища: локальный или внешняя БД
	var storageAdapter out.StoragePort
	switch cfg.Storage.Backend {
	case "postgres":
		pgAdapter, err := postgres.NewPostgresAdapter(ctx, cfg.Storage.PostgresDSN, mainLogger.WithModule("PostgresAdapter"))
		if err != nil {
			log.Error("app.postgres.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer pgAdapter.Close()
		storageAdapter = pgAdapter
	default:
		memAdapter := memstore.NewMemstoreAdapter(mainLogger.WithModule("MemstoreAdapter"))
		memAdapter.SeedRules(calendar.Rules)
		storageAdapter = memAdapter
	}

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		lruAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = lruAdapter
	}

	var notifierAdapter out.NotifierPort
	if cfg.Notifier.Enabled {
		amqpNotifier, err := notifier.NewAmqpNotifier(cfg, mainLogger.WithModule("AmqpNotifier"))
		if err != nil {
			log.Error("app.notifier.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer func() {
			if err := amqpNotifier.Close(); err != nil {
				log.Error("app.notifier.close_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
		notifierAdapter = amqpNotifier
	}

	service := availability_service.NewAvailabilityService(
		calendar,
		cfg.Location,
		storageAdapter,
		cacheAdapter,
		notifierAdapter,
		mainLogger,
	)

	router := gin.Default()
	controller := http.NewBookingController(service, calendar, cfg)
	controller.RegisterRoutes(router)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
