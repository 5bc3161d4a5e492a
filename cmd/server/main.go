package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/table-reservation/internal/config"
	"github.com/iliyamo/table-reservation/internal/database"
	"github.com/iliyamo/table-reservation/internal/fixtures"
	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/logger"
	"github.com/iliyamo/table-reservation/internal/metrics"
	"github.com/iliyamo/table-reservation/internal/middleware"
	"github.com/iliyamo/table-reservation/internal/queue"
	"github.com/iliyamo/table-reservation/internal/repository"
	"github.com/iliyamo/table-reservation/internal/router"
	"github.com/iliyamo/table-reservation/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load() // Load environment config
	log := logger.New("table-reservation", cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server_exit", "server stopped with error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	mig, err := database.Migrate(ctx, db, dialect)
	if err != nil {
		return err
	}
	log.Info("migrate", "schema up to date", "applied", len(mig.Applied), "skipped", len(mig.Skipped))

	catalog := repository.NewCatalogRepo(db)
	places := repository.NewPlaceRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	if cfg.SeedFixtures {
		set, err := fixtures.Default()
		if err != nil {
			return err
		}
		res, err := fixtures.Seed(ctx, fixtures.Stores{Catalog: catalog, Places: places, Reservations: reservations}, set)
		if err != nil {
			return err
		}
		log.Info("seed", "fixtures seeded", "restaurants", res.Restaurants, "menu_items", res.MenuItems,
			"places", res.Places, "reservations", res.Reservations)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis", "redis unavailable; response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	pub, err := queue.NewPublisher(queue.PublisherConfig{
		Broker:       cfg.EventBroker,
		RabbitURL:    cfg.RabbitURL,
		KafkaBrokers: cfg.KafkaBrokers,
		Topic:        cfg.EventTopic,
	})
	if err != nil {
		return err
	}
	defer pub.Close()

	serverMetrics := metrics.NewServerMetrics(prometheus.DefaultRegisterer)
	resMetrics := metrics.NewReservationMetrics(prometheus.DefaultRegisterer)

	bookings := service.NewBookingService(catalog, reservations, pub, resMetrics, log)
	resSvc := service.NewReservationService(reservations, pub, resMetrics, log)
	menuSvc := service.NewMenuService(catalog, log)
	projector := service.NewProjector(reservations, catalog)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), echomw.RequestID(), serverMetrics.Middleware(), requestLogger(log))

	cacheCfg := config.LoadCacheConfig()
	guards := router.Guards{
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Purge:     middleware.NewCachePurger(cacheCfg, rdb).PurgeOnWrite(),
	}

	router.RegisterRoutes(e, db, metrics.Handler())
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, guards)
	router.RegisterPublic(e, handler.NewPublicHandler(catalog, places), guards)
	router.RegisterTourist(e, handler.NewTouristHandler(bookings, resSvc), cfg.JWTSecret, guards)
	router.RegisterAdmin(e, router.AdminHandlers{
		Restaurants:  handler.NewAdminRestaurantHandler(catalog),
		Menu:         handler.NewAdminMenuHandler(menuSvc),
		Reservations: handler.NewAdminReservationHandler(resSvc),
		Stats:        handler.NewStatsHandler(projector),
	}, cfg.JWTSecret, guards)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info("listen", "http server listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutdown", "shutting down http server")
		return e.Shutdown(sctx)
	})
	if cfg.EventBroker == queue.BrokerRabbitMQ {
		consumer := &queue.BookingLogConsumer{
			URL:     cfg.RabbitURL,
			Queue:   cfg.EventTopic,
			LogPath: cfg.BookingLogPath,
			Log:     log,
		}
		g.Go(func() error { return consumer.Run(gctx) })
	}
	return g.Wait()
}

// requestLogger writes one structured line per request.  Server errors
// include the detail handlers stash under handler.ErrorDetailKey.
func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency_ms", v.Latency.Milliseconds(), "request_id", v.RequestID, "remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			if detail, ok := c.Get(handler.ErrorDetailKey).(string); ok && detail != "" {
				args = append(args, "detail", detail)
			}
			if v.Status >= http.StatusInternalServerError {
				log.Warn("http_request", "request failed", args...)
				return nil
			}
			log.Info("http_request", "request handled", args...)
			return nil
		},
	})
}
