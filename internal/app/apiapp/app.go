package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/config"
	s3infra "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/infra/s3"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/jobs/cleanup"
	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
	redrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/redis"
	authsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/auth"
	chatsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/chat"
	matchessvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/matches"
	mediasvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/media"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	ratesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/rate"
	swipesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	ownerRepo := pgrepo.NewOwnerRepo(pool)
	petRepo := pgrepo.NewPetRepo(pool)
	swipeRepo := pgrepo.NewSwipeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, ownerRepo, sessionRepo, cfg.Auth.RefreshTTL)
	petService := petssvc.NewService(petRepo)
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Chat.RatePerMinute, cfg.Chat.RatePer10Sec)
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		DB:         pool,
		SwipeStore: swipeRepo,
		MatchStore: matchRepo,
		Candidates: petRepo,
	}, cfg.Feed.CandidateLimit)
	matchService := matchessvc.NewService(matchRepo)
	chatService := chatsvc.NewService(chatsvc.Dependencies{
		MatchStore:   matchRepo,
		MessageStore: messageRepo,
		RateLimiter:  rateLimiter,
	}, chatsvc.Config{
		MaxMessageLength: cfg.Chat.MessageMaxLength,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(photoRepo, mediaStorage)
	cleanupJob := cleanup.NewSwipeCompactionJob(swipeRepo, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:  authService,
		PetService:   petService,
		SwipeService: swipeService,
		MatchService: matchService,
		ChatService:  chatService,
		MediaService: mediaService,
		Logger:       log,
		Config:       cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// RunCleanupLoop compacts the swipe ledger on a fixed interval until ctx
// is cancelled. Skipped entirely when postgres is degraded.
func (a *App) RunCleanupLoop(ctx context.Context) {
	if a.postgres == nil {
		a.logger.Warn("cleanup loop disabled, postgres is unavailable")
		return
	}

	interval := a.cfg.Cleanup.Interval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	if err := a.cleanupJob.Run(ctx); err != nil {
		a.logger.Error("cleanup run failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				a.logger.Error("cleanup run failed", zap.Error(err))
			}
		}
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
