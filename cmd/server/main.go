package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peacemaker/internal/cache"
	"peacemaker/internal/config"
	"peacemaker/internal/gemini"
	"peacemaker/internal/interpret"
	"peacemaker/internal/repository"
	"peacemaker/internal/retry"
	"peacemaker/internal/scale"
	"peacemaker/internal/service"
	"peacemaker/internal/transport/rest"
	"peacemaker/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Peacemaker API
// @version 1.0
// @description Scores text for toxicity or dignity using a generative model
// @BasePath /
func main() {
	ctx := context.Background()
	cfg := config.Load()

	log.Printf("AI Config:")
	log.Printf("  Model:       %s", cfg.AI.Model)
	log.Printf("  Endpoint:    %s", cfg.AI.ModelEndpoint())
	log.Printf("  Generation:  temperature=%.2f topK=%d topP=%.2f maxOutputTokens=%d",
		cfg.AI.Generation.Temperature, cfg.AI.Generation.TopK, cfg.AI.Generation.TopP, cfg.AI.Generation.MaxOutputTokens)
	log.Printf("  Retry:       max=%d initial=%s x%.1f jitter<=%s",
		cfg.Retry.MaxRetries, cfg.Retry.InitialDelay(), cfg.Retry.Multiplier, cfg.Retry.MaxJitter())
	log.Printf("  Parse mode:  %s", cfg.ParseMode)
	if cfg.AI.IsEnabled() {
		log.Println("  API Key:     configured ✓")
	} else {
		log.Println("  API Key:     NOT SET (serving mock results)")
	}

	var generator service.Generator
	var readiness rest.HealthChecker
	if cfg.AI.IsEnabled() {
		client := gemini.NewClient(cfg.AI, nil)
		generator = client
		readiness = client
	}

	policy := retry.Policy{
		MaxRetries:   cfg.Retry.MaxRetries,
		InitialDelay: cfg.Retry.InitialDelay(),
		Multiplier:   cfg.Retry.Multiplier,
		MaxJitter:    cfg.Retry.MaxJitter(),
	}
	interpreter := interpret.Interpreter{Mode: interpret.ParseMode(cfg.ParseMode)}

	analyzer := service.NewAnalyzerService(scale.DefaultRegistry(), generator, policy, interpreter)
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)

	// MongoDB history (optional)
	if cfg.HistoryEnabled() {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		analyzer.SetHistory(repository.NewAnalysisRepo(mongoClient.Database(cfg.MongoDatabase)))
	} else {
		log.Println("Warning: MONGO_URI not set, analysis history disabled")
	}

	// Redis result cache (optional)
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")

		analyzer.SetCache(cache.NewResultCache(rdb, cfg.CacheTTL))
	} else {
		log.Println("Warning: REDIS_URI not set, result cache disabled")
	}

	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Inject broadcaster (wsHub implements service.Broadcaster)
	analyzer.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AnalyzerService: analyzer,
		AuthService:     authSvc,
		WSHub:           wsHub,
		Readiness:       readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Admin auth: username=%s", cfg.AdminUsername)
		log.Println("Endpoints:")
		log.Println("  POST /v1/analyze")
		log.Println("  GET  /v1/scales, /v1/scales/{name}, /v1/topics")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/analyses, /v1/analyses/{id}")
		log.Println("  WS   /v1/ws/sessions/{sessionId}")
		log.Println("  GET  /health, /ready, /swagger/doc.json")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
