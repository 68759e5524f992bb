package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/muhammadolammi/pivot/internal/database"
	"github.com/muhammadolammi/pivot/internal/events"
	"github.com/muhammadolammi/pivot/internal/metrics"
	"github.com/muhammadolammi/pivot/internal/plan"
	"github.com/muhammadolammi/pivot/internal/provider"
	"github.com/muhammadolammi/pivot/internal/server"
	"github.com/muhammadolammi/pivot/internal/storage"
)

const agentName = "career_coach"

func main() {
	_ = godotenv.Load()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration. err: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.MustNew(prometheus.DefaultRegisterer)
	opts := []plan.Option{plan.WithObserver(m)}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create generation provider: %v", err)
	}
	if gen == nil {
		log.Println("⚠️ GOOGLE_API_KEY not set, generation endpoints will fail")
	} else {
		gen = provider.WithPolicy(gen, cfg.Policy)
	}

	if cfg.DBUrl != "" {
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			log.Fatal("error opening db. err: ", err)
		}
		defer db.Close()
		if cfg.DBMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				log.Fatal("error migrating db. err: ", err)
			}
		}
		opts = append(opts, plan.WithStore(database.New(db)))
		log.Println("📦 Database: connected")
	} else {
		log.Println("📦 Database: not configured")
	}

	if cfg.R2.Complete() {
		src, err := storage.NewR2Source(ctx, cfg.R2)
		if err != nil {
			log.Fatal("error creating r2 source. err: ", err)
		}
		opts = append(opts, plan.WithDocumentSource(src))
	}

	if cfg.RABBITMQUrl != "" {
		pub, err := events.NewPublisher(cfg.RABBITMQUrl, events.DefaultExchange)
		if err != nil {
			log.Fatalf("error connecting to RabbitMQ. err:  %v", err)
		}
		defer pub.Close()
		opts = append(opts, plan.WithPublisher(pub))
	}

	handler := plan.NewHandler(gen, opts...)
	srv := server.New(handler, m, server.Config{
		EnableCORS:     true,
		Debug:          cfg.Debug,
		MetricsHandler: promhttp.Handler(),
	})
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("🚀 Pivot server running on http://localhost:%s", cfg.Port)
		logEndpoints()
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal("server stopped. err: ", err)
	}
	log.Println("server stopped")
}

// newGenerator returns nil when no API key is configured.
func newGenerator(ctx context.Context, cfg Config) (plan.Generator, error) {
	if cfg.GoogleApiKey == "" {
		return nil, nil
	}
	if cfg.ProviderMode == "agent" {
		a, err := provider.NewAgent(ctx, cfg.GoogleApiKey, cfg.Model, agentName)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	g, err := provider.NewGemini(ctx, &genai.ClientConfig{APIKey: cfg.GoogleApiKey}, cfg.Model)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func logEndpoints() {
	log.Println("📋 Available endpoints:")
	log.Println("  POST /api/upload-resume - Upload and analyze resume")
	log.Println("  GET  /api/resumes - Get all stored resumes")
	log.Println("  POST /api/analyze-stored-resume - Analyze stored resume")
	log.Println("  POST /api/decision-breaker - Generate 7-day action plan")
	log.Println("  POST /api/interview-prep - Generate interview prep plan")
	log.Println("  POST /api/analyze-resume - Analyze resume text")
	log.Println("  POST /api/skill-gaps - Analyze skill gaps")
	log.Println("  GET  /api/health - Health check")
	log.Println("  GET  /api/db-setup - Database setup instructions")
	log.Println("  GET  /metrics - Prometheus metrics")
}
