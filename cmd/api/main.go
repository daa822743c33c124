package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/printeez/backend/internal/auth"
	cartapp "github.com/printeez/backend/internal/cart/application"
	carthttp "github.com/printeez/backend/internal/cart/infrastructure/http"
	cartpg "github.com/printeez/backend/internal/cart/infrastructure/postgres"
	catalogapp "github.com/printeez/backend/internal/catalog/application"
	cataloghttp "github.com/printeez/backend/internal/catalog/infrastructure/http"
	catalogpg "github.com/printeez/backend/internal/catalog/infrastructure/postgres"
	"github.com/printeez/backend/internal/config"
	"github.com/printeez/backend/internal/db"
	orderapp "github.com/printeez/backend/internal/order/application"
	orderhttp "github.com/printeez/backend/internal/order/infrastructure/http"
	orderkafka "github.com/printeez/backend/internal/order/infrastructure/kafka"
	orderpg "github.com/printeez/backend/internal/order/infrastructure/postgres"
	wishlisthttp "github.com/printeez/backend/internal/wishlist/infrastructure/http"
	wishlistpg "github.com/printeez/backend/internal/wishlist/infrastructure/postgres"
	"github.com/printeez/backend/pkg/logging"
	"github.com/printeez/backend/pkg/outbox"
	"github.com/printeez/backend/pkg/shutdown"
	"github.com/printeez/backend/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New("api", cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "api", cfg.Telemetry.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Apply(ctx, pool); err != nil {
		log.Error("schema apply failed", "err", err)
		os.Exit(1)
	}

	writer := orderkafka.NewWriter(cfg.Kafka.Brokers)
	defer writer.Close()

	catalogRepo := catalogpg.NewRepository(log, pool)
	catalogSvc := catalogapp.NewService(catalogRepo)
	catalogHandler := cataloghttp.NewHandler(log, catalogSvc)

	orderRepo := orderpg.NewRepository(log, pool)
	orderSvc := orderapp.NewService(orderRepo, catalogRepo)
	orderHandler := orderhttp.NewHandler(log, orderSvc)

	cartRepo := cartpg.NewRepository(log, pool)
	cartSvc := cartapp.NewService(cartRepo, catalogRepo)
	cartHandler := carthttp.NewHandler(log, cartSvc)

	wishlistRepo := wishlistpg.NewRepository(log, pool)
	wishlistHandler := wishlisthttp.NewHandler(log, wishlistRepo)

	store := orderpg.NewOutboxStore(log, pool)
	dispatch := outbox.NewDispatcher(log, writer, cfg.Kafka.OrderTopic)
	relay := outbox.NewRelay(log, store, dispatch, hostnameRelayID())

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Mount("/products", catalogHandler.Routes())

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret))
		r.Mount("/orders", orderHandler.Routes())
		r.Mount("/cart", cartHandler.Routes())
		r.Mount("/wishlist", wishlistHandler.Routes())
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret), auth.RequireAdmin)
		r.Mount("/products", catalogHandler.AdminRoutes())
		r.Mount("/orders", orderHandler.AdminRoutes())
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error("relay stopped with error", "err", err)
		}
	}()

	go func() {
		log.Info("http listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("api shutdown complete")
}

func hostnameRelayID() string {
	host, err := os.Hostname()
	if err != nil {
		return "api-relay"
	}
	return "api-relay-" + host
}
