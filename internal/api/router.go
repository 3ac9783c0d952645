// Package api wires the HTTP surface: routing, middleware and handlers.
// Handlers only adapt JSON to Manager calls; all conversation semantics
// live below this package.
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

	"github.com/sahayak-ai/sahayak/internal/agent"
	"github.com/sahayak-ai/sahayak/internal/api/handlers"
	mw "github.com/sahayak-ai/sahayak/internal/api/middleware"
	"github.com/sahayak-ai/sahayak/internal/application"
	"github.com/sahayak-ai/sahayak/internal/config"
	"github.com/sahayak-ai/sahayak/internal/domain"
	"github.com/sahayak-ai/sahayak/internal/eligibility"
	"github.com/sahayak-ai/sahayak/internal/llm"
)

// App holds the router and the conversation manager for lifecycle
// management.
type App struct {
	Router  *chi.Mux
	Manager *agent.Manager

	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Deps are the assembled core components the HTTP surface exposes.
type Deps struct {
	LLM          domain.LLMClient
	Schemes      []domain.SchemeRule
	Applications application.Client
	Manager      agent.ManagerConfig

	// EligibilityThreshold tunes provisional eligibility; values outside
	// (0,1] fall back to the engine default.
	EligibilityThreshold float64
}

func NewApp(deps Deps, logger *zap.Logger) *App {
	engine := eligibility.NewEngine(deps.Schemes,
		eligibility.WithProvisionalThreshold(deps.EligibilityThreshold))
	manager := agent.NewManager(deps.LLM, engine, deps.Manager, logger)

	conversationHandler := handlers.NewConversationHandler(manager)
	applicationHandler := handlers.NewApplicationHandler(manager, deps.Applications, deps.Schemes)
	schemeHandler := handlers.NewSchemeHandler(deps.Schemes)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Manager:   manager,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", conversationHandler.Delete)
				r.Post("/turns", conversationHandler.ProcessTurn)
				r.Get("/profile", conversationHandler.GetProfile)
				r.Get("/summary", conversationHandler.GetSummary)
				r.Post("/contradictions/resolve", conversationHandler.ResolveContradictions)
				r.Post("/applications", applicationHandler.Submit)
				r.Get("/applications/{ref}", applicationHandler.Status)
			})
		})

		r.Route("/schemes", func(r chi.Router) {
			r.Get("/", schemeHandler.List)
			r.Get("/{id}", schemeHandler.GetByID)
		})
	})

	return app
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
			"uptime_seconds":     uptime.Seconds(),
			"uptime_human":       uptime.Round(time.Second).String(),
			"request_count":      app.requestCount.Load(),
			"error_count":        app.errorCount.Load(),
			"live_conversations": app.Manager.Len(),
			"goroutines":         runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure clients satisfy interfaces at compile time.
var (
	_ domain.LLMClient = (*llm.Client)(nil)
	_ domain.LLMClient = (*llm.MockClient)(nil)
)
