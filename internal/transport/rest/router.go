package rest

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	_ "peacemaker/docs"
	"peacemaker/internal/service"
	"peacemaker/internal/transport/rest/handler"
	"peacemaker/internal/transport/rest/middleware"
	"peacemaker/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

const readyTimeout = 5 * time.Second

// HealthChecker verifies the remote model is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Container holds all dependencies for the router
type Container struct {
	AnalyzerService *service.AnalyzerService
	AuthService     *service.AuthService
	WSHub           *ws.Hub
	// Readiness is nil in mock mode, where there is no remote model to check
	Readiness HealthChecker
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	analyzeHandler := handler.NewAnalyzeHandler(c.AnalyzerService)
	historyHandler := handler.NewHistoryHandler(c.AnalyzerService)
	authHandler := handler.NewAuthHandler(c.AuthService)
	wsHandler := ws.NewHandler(c.WSHub)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/analyze", analyzeHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/scales", analyzeHandler.ListScales).Methods("GET", "OPTIONS")
	v1.HandleFunc("/scales/{name}", analyzeHandler.GetScale).Methods("GET", "OPTIONS")
	v1.HandleFunc("/topics", analyzeHandler.Topics).Methods("GET", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Progress events for a browser session
	v1.HandleFunc("/ws/sessions/{sessionId}", wsHandler.SessionWS).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/ready", readyHandler(c.Readiness)).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api documentation unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/analyses", historyHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/analyses/{id}", historyHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func readyHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if checker == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ready","ai":"mock"}`))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			log.Printf("[REST] Readiness check failed: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable","ai":"gemini"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready","ai":"gemini"}`))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
