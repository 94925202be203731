package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhephyr/dialogue-engine/internal/api/handlers"
	mw "github.com/zhephyr/dialogue-engine/internal/api/middleware"
	"github.com/zhephyr/dialogue-engine/internal/buildconfig"
	"github.com/zhephyr/dialogue-engine/internal/config"
	"github.com/zhephyr/dialogue-engine/internal/engine"
)

// App holds the router and request counters for the metrics endpoint.
type App struct {
	Router       *chi.Mux
	Engine       *engine.Engine
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(eng *engine.Engine, logger *zap.Logger) *App {
	worldHandler := handlers.NewWorldHandler(eng.World())
	scheduleHandler := handlers.NewScheduleHandler(eng.World())
	npcHandler := handlers.NewNPCHandler(eng)
	gameHandler := handlers.NewGameHandler(eng)
	validationHandler := handlers.NewValidationHandler(eng.Checker())

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Engine:    eng,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler())

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		// World model
		r.Route("/world", func(r chi.Router) {
			r.Get("/summary", worldHandler.GetSummary)

			r.Route("/facts", func(r chi.Router) {
				r.Get("/", worldHandler.ListFacts)
				r.Post("/", worldHandler.CreateFact)
				r.Get("/{key}", worldHandler.GetFact)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", worldHandler.ListEvents)
				r.Post("/", worldHandler.CreateEvent)
				r.Get("/{id}", worldHandler.GetEvent)
			})

			r.Route("/relationships", func(r chi.Router) {
				r.Get("/", worldHandler.ListRelationships)
				r.Post("/", worldHandler.CreateRelationship)
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", worldHandler.ListLocations)
				r.Post("/", worldHandler.CreateLocation)
			})

			r.Route("/characters", func(r chi.Router) {
				r.Get("/", worldHandler.ListCharacters)
				r.Post("/", worldHandler.CreateCharacter)
				r.Get("/{name}/knowledge", worldHandler.GetKnowledge)
				r.Get("/{name}/schedule", scheduleHandler.GetSchedule)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Post("/", scheduleHandler.CreateEntry)
				r.Get("/whereabouts", scheduleHandler.GetWhereabouts)
				r.Post("/verify", scheduleHandler.VerifyClaim)
			})
		})

		// NPCs
		r.Route("/npcs", func(r chi.Router) {
			r.Get("/", npcHandler.List)
			r.Post("/", npcHandler.Create)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", npcHandler.Get)
				r.Post("/converse", npcHandler.Converse)
				r.Get("/conversation", npcHandler.GetConversation)
				r.Post("/conversation/reset", npcHandler.ResetConversation)
				r.Get("/lies", npcHandler.GetLies)
				r.Get("/omissions", npcHandler.GetOmissions)
			})
		})

		// Claim validation
		r.Route("/validation", func(r chi.Router) {
			r.Post("/statement", validationHandler.ValidateStatement)
			r.Get("/summary", validationHandler.GetSummary)
			r.Get("/history", validationHandler.GetHistory)
		})

		// Scene and aggregate stats
		r.Get("/scene", gameHandler.GetScene)
		r.Put("/scene", gameHandler.SetScene)
		r.Get("/stats", gameHandler.GetStats)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(eng *engine.Engine, logger *zap.Logger) *chi.Mux {
	return NewApp(eng, logger).Router
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
