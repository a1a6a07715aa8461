package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	appauth "github.com/chima-angwe/location-stamper-backend/internal/application/auth"
	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/application/stamps"
	"github.com/chima-angwe/location-stamper-backend/internal/config"
	infraauth "github.com/chima-angwe/location-stamper-backend/internal/infrastructure/auth"
	httprouter "github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/handlers"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/http/middleware"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/media"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/persistence/db"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/persistence/migrations"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/persistence/postgres"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/security"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	if err := runMigrations(ctx, cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	queries := db.New(pool)
	userRepo := postgres.NewUserRepository(queries)
	stampRepo := postgres.NewStampRepository(queries)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Expiry)

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL)
	}

	registerUC := appauth.NewRegister(userRepo, hasher, issuer)
	loginUC := appauth.NewLogin(userRepo, hasher, issuer)
	currentUserUC := appauth.NewCurrentUser(userRepo)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, currentUserUC, emitter, log)

	stampsHandler := handlers.NewStampsHandler(
		stamps.NewCreate(stampRepo),
		stamps.NewGet(stampRepo),
		stamps.NewList(stampRepo),
		stamps.NewUpdate(stampRepo),
		stamps.NewDelete(stampRepo),
		log,
	)

	var uploadHandler *handlers.UploadHandler
	if cfg.Media.Bucket != "" {
		store, err := media.NewS3Store(ctx, media.Config{
			Endpoint:      cfg.Media.Endpoint,
			Region:        cfg.Media.Region,
			Bucket:        cfg.Media.Bucket,
			AccessKey:     cfg.Media.AccessKey,
			SecretKey:     cfg.Media.SecretKey,
			PublicBaseURL: cfg.Media.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create media store")
		}
		uploadHandler = handlers.NewUploadHandler(store, cfg.Upload.MaxFileBytes, cfg.Upload.MaxFiles, log)
	} else {
		log.Warn().Msg("S3_BUCKET not set; photo upload routes disabled")
	}

	limiterStore := newLimiterStore(redisClient, log)
	newLimit := func(name string, w config.RateLimitWindow, message string) func(http.Handler) http.Handler {
		return middleware.NewRateLimiter(limiterStore, middleware.RateLimitClass{
			Name:    name,
			Window:  w.Window,
			Max:     w.Max,
			Message: message,
		})
	}

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		StampsHandler: stampsHandler,
		UploadHandler: uploadHandler,
		HealthHandler: handlers.NewHealthHandler(pool, redisClient),
		RequireJWT:    middleware.NewAuthValidator(issuer).Handler,
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.DevMode)),
		CORS:          middleware.CORS(cfg.CORS.AllowedOrigins),
		GeneralRateLimit: newLimit("general", cfg.RateLimit.General,
			"Too many requests from this IP, please try again later."),
		AuthRateLimit: newLimit("auth", cfg.RateLimit.Auth,
			"Too many authentication attempts, please try again later."),
		UploadRateLimit: newLimit("upload", cfg.RateLimit.Upload,
			"Too many upload requests, please try again later."),
		StampCreateRateLimit: newLimit("stamp-create", cfg.RateLimit.StampCreate,
			"Too many stamps created, please try again later."),
		Log:     log,
		Metrics: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

// runMigrations applies the embedded goose migrations over database/sql; the
// pgx stdlib driver registers itself as "pgx".
func runMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, ".")
}

// newLimiterStore prefers redis so limits hold across replicas, falling back
// to the in-memory store.
func newLimiterStore(redisClient *redis.Client, log zerolog.Logger) limiter.Store {
	if redisClient != nil {
		store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{
			Prefix: "stamper:ratelimit",
		})
		if err == nil {
			return store
		}
		log.Warn().Err(err).Msg("redis limiter store failed; using memory store")
	}
	return memorystore.NewStore()
}
