package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/platebook/backend/config"
	"github.com/platebook/backend/internal/api"
	"github.com/platebook/backend/internal/database"
	"github.com/platebook/backend/internal/middleware"
	"github.com/platebook/backend/internal/router"
	"github.com/platebook/backend/internal/service"
)

// Server owns the HTTP listener and the wired application graph.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// New constructs the full application from configuration: database, services,
// optional Redis and S3 subsystems, handlers, routes. Optional subsystems that
// are not configured leave their endpoints answering 503.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, err
	}

	recipeSvc := service.NewRecipeService(db)
	mealSvc := service.NewMealService(db)

	llm := service.NewLLMClient(cfg)
	extractionSvc := service.NewExtractionService(llm)
	suggestionSvc := service.NewSuggestionService(llm, recipeSvc)

	var (
		drafts      *service.DraftStore
		aiRateLimit *middleware.RateLimiter
	)
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		drafts = service.NewDraftStore(redisClient)
		aiRateLimit = middleware.NewAIRateLimiter(redisClient)
		log.Info("redis connected", zap.String("features", "drafts, ai rate limiting"))
	} else {
		log.Info("redis not configured, drafts and ai rate limiting disabled")
	}

	var images service.IImageService
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3: %w", err)
		}
		images = service.NewImageService(s3cfg)
		log.Info("s3 image storage enabled", zap.String("bucket", cfg.S3Bucket))
	} else {
		log.Info("s3 not configured, image uploads disabled")
	}

	engine := router.New(log, cfg.AllowedOrigins, router.Handlers{
		Recipes:     api.NewRecipeHandler(recipeSvc, images),
		Meals:       api.NewMealHandler(mealSvc),
		Extract:     api.NewExtractHandler(extractionSvc, recipeSvc, drafts),
		Suggest:     api.NewSuggestHandler(suggestionSvc),
		AIRateLimit: aiRateLimit,
	})

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
