package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"questboard/internal/blob"
	"questboard/internal/config"
	"questboard/internal/gamification"
	"questboard/internal/handler"
	"questboard/internal/livesync"
	"questboard/internal/repository"
	"questboard/internal/store"
	"questboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	// Syncer is the subscription interface exposed to embedding callers.
	Syncer *livesync.Syncer
}

func Init(cfg *config.Config) (*Server, error) {
	log := logger.Get()

	// Authoritative store (member XP point of truth)
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info().Msg("✅ Connected to database")

	// Local collection store
	b, err := openBlob(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", cfg.BlobBackend).Msg("✅ Collection store ready")

	st := store.New(b)

	// Repositories
	taskRepo := repository.NewTaskRepository(st)
	memberRepo := repository.NewMemberRepository(st)
	progressRepo := repository.NewProgressRepository(db)

	// Gamification hook over the in-process gateway
	hook := gamification.NewHook(gamification.NewRepoGateway(progressRepo), log)

	// Sync façade for embedding callers
	syncer := livesync.New(taskRepo, memberRepo, cfg.SyncInterval, log)

	// Handlers
	memberHandler := handler.NewMemberHandler(memberRepo, progressRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, hook)

	r := gin.Default()

	// Member routes
	r.POST("/members", memberHandler.Create)
	r.GET("/members", memberHandler.GetAll)
	r.GET("/members/:id", memberHandler.GetByID)
	r.PUT("/members/:id", memberHandler.Update)
	r.DELETE("/members/:id", memberHandler.Delete)
	r.POST("/members/:id/xp", memberHandler.AddXP)
	r.GET("/members/:id/progress", memberHandler.GetProgress)

	// Task routes
	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks", taskHandler.GetAll)
	r.GET("/tasks/:id", taskHandler.GetByID)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.POST("/tasks/:id/complete", taskHandler.Complete)

	// Observability & docs
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Syncer: syncer,
	}, nil
}

// openBlob builds the collection-store backend chosen by configuration.
func openBlob(cfg *config.Config) (blob.Blob, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.BlobBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("❌ failed to connect to Redis: %w", err)
		}
		return blob.NewRedisBlob(client), nil
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to Mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, fmt.Errorf("❌ failed to ping Mongo: %w", err)
		}
		return blob.NewMongoBlob(client.Database(cfg.MongoDB)), nil
	default:
		return blob.NewFileBlob(cfg.DataDir)
	}
}

func (s *Server) Run() {
	log := logger.Get()

	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Info().Str("port", s.Config.ServerPort).Msg("🚀 Server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Server forced to shutdown")
	}

	log.Info().Msg("✅ Server exited properly")
}
