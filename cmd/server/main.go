package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resmedx/noticeboard/internal/auth"
	"github.com/resmedx/noticeboard/internal/blob"
	"github.com/resmedx/noticeboard/internal/config"
	"github.com/resmedx/noticeboard/internal/middleware"
	"github.com/resmedx/noticeboard/internal/notices"
	"github.com/resmedx/noticeboard/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)

	userStore := store.NewUserStore(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}
	noticeStore := store.NewNoticeStore(db)

	// ── Blob storage ─────────────────────────────────────────
	var blobs blob.Store
	switch cfg.BlobBackend {
	case "minio":
		blobs, err = blob.NewMinio(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
	default:
		blobs, err = blob.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("blob storage: %v", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	tokens := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL)
	authHandler := auth.NewHandler(userStore, tokens)
	noticeHandler := notices.NewHandler(noticeStore, blobs, cfg.StrictDelete)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Status check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "Server is running smoothly",
			"timestamp": time.Now(),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Route("/notices", func(r chi.Router) {
			r.Get("/", noticeHandler.List)
			r.Get("/{filename}", noticeHandler.Download)

			r.Group(func(r chi.Router) {
				if cfg.AuthRequired {
					r.Use(middleware.RequireAuth(tokens))
				}
				r.Post("/", noticeHandler.Upload)
				r.Patch("/{id}", noticeHandler.Update)
				r.Delete("/{id}", noticeHandler.Delete)
			})
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
