package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	inhttp "github.com/ArnavMhatre/vtcalapp/internal/adapters/in/http"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/in/rabbitmq"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/out/cache"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/out/calendar"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/out/logger"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/out/ocr"
	"github.com/ArnavMhatre/vtcalapp/internal/adapters/out/timetable"
	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
	"github.com/ArnavMhatre/vtcalapp/internal/core/services/timetable_service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"semesterEnd":     cfg.Semester.End,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	timetableAdapter := timetable.NewTimetableAdapter(cfg, logger.WithModule("TimetableAdapter"))
	ocrAdapter := ocr.NewTesseractAdapter(cfg, logger.WithModule("OcrAdapter"))

	calendarAdapter, err := calendar.NewCaldavAdapter(cfg, logger.WithModule("CalendarAdapter"))
	if err != nil {
		logger.Error("app.calendar.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		sectionCache, err := cache.NewSectionCacheAdapter(cfg, logger.WithModule("CacheAdapter"))
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = sectionCache
	}

	// Инициализация сервиса
	timetableService := timetable_service.NewTimetableService(
		timetableAdapter,
		ocrAdapter,
		calendarAdapter,
		cacheAdapter,
		logger,
		cfg,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := inhttp.NewTimetableController(
		timetableService,
		cfg,
		logger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewEventListener(
			timetableService,
			cfg,
			logger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
