package server

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paycalc/internal/domain/payroll"
	"paycalc/internal/domain/taxtable"
	"paycalc/internal/platform/config"
	"paycalc/internal/platform/db"
	authhandler "paycalc/internal/transport/http/handlers/auth"
	overtimehandler "paycalc/internal/transport/http/handlers/overtime"
	payrollhandler "paycalc/internal/transport/http/handlers/payroll"
	"paycalc/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	var repo taxtable.Repository
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()
		repo = taxtable.NewPGRepository(pool)
	} else {
		repo = taxtable.NewFileRepository(cfg.TaxTableDir)
	}

	tables := taxtable.NewStore(repo)
	// Fail fast on a missing or malformed default table.
	if _, err := tables.Table(ctx, cfg.TaxTableVersion); err != nil {
		log.Fatalf("load tax table %s failed: %v", cfg.TaxTableVersion, err)
	}

	calc := payroll.NewCalculator(tables, cfg.TaxTableVersion, cfg.PayPeriodsPerYear)
	agg := payroll.NewAggregator(calc, cfg.PreviewWorkers)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := tables.Table(r.Context(), cfg.TaxTableVersion); err != nil {
			http.Error(w, "tax tables not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(cfg)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))

			payrollHandler := payrollhandler.NewHandler(calc, agg, tables)
			payrollHandler.RegisterRoutes(r)

			overtimeHandler := overtimehandler.NewHandler()
			overtimeHandler.RegisterRoutes(r)
		})
	})

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
