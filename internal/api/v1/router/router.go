package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/pubsub"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New builds the HTTP handler and its backing resources. The returned
// publisher is nil when Pub/Sub is not configured; the caller owns closing
// both it and the DB.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, *pubsub.PubSubPublisher, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// In a development environment, we want to ensure that SSL is disabled for
	// local testing. In production, the connection string should be provided
	// with the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := " "
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if strings.Contains(dsn, "?") {
				separator = "&"
			} else {
				separator = "?"
			}
		}
		dsn += separator + "sslmode=disable"
	}
	// For non-development environments that use a transaction pooler like pgbouncer,
	// we must use the simple query protocol to avoid issues with server-side prepared statements.
	if cfg.Environment != "development" && !strings.Contains(dsn, "prefer_simple_protocol") {
		separator := "&"
		if !strings.Contains(dsn, "?") {
			separator = "?"
		}
		dsn += separator + "prefer_simple_protocol=true"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection")
		return nil, nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		db.Close()
		return nil, nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Resolve the JWT secret. An inline JWT_SECRET wins; otherwise it is
	// fetched from Secret Manager.
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" && cfg.JWTSecretName != "" {
		sm, err := service.NewSecretManagerService(context.Background(), cfg.GCPProjectID)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Secret Manager client")
			db.Close()
			return nil, nil, nil, err
		}
		jwtSecret, err = sm.GetSecret(context.Background(), cfg.JWTSecretName)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to fetch JWT secret")
			db.Close()
			return nil, nil, nil, err
		}
		if err := sm.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close Secret Manager client")
		}
	}

	// 3. Initialize S3 client for profile photo uploads. Optional.
	var s3Client *s3.Client
	if cfg.S3URL != "" {
		s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
			awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
		)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load S3 config")
			db.Close()
			return nil, nil, nil, err
		}
		s3Client = s3.NewFromConfig(s3Config, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		})
	} else {
		logger.Info().Msg("S3 is not configured, photo uploads disabled")
	}

	// 4. Initialize Pub/Sub publisher for activity events. Optional.
	var publisher pubsub.Publisher
	var pubClient *pubsub.PubSubPublisher
	if cfg.GCPProjectID != "" && cfg.ActivityTopic != "" {
		p, err := pubsub.NewPublisher(context.Background(), cfg)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
			db.Close()
			return nil, nil, nil, err
		}
		publisher = p
		pubClient = p
	} else {
		logger.Info().Msg("Pub/Sub is not configured, activity events disabled")
	}

	// 5. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 6. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	usageRepo := repository.NewUsageRepo(db)
	scoreRepo := repository.NewScoreRepo(db)

	authSvc := service.NewAuthService(userRepo, jwtSecret, logger)
	userSvc := service.NewUserService(userRepo, s3Client, cfg.S3Bucket, logger)
	usageSvc := service.NewUsageService(usageRepo, publisher, cfg.ActivityTopic, logger)
	scoreSvc := service.NewScoreService(scoreRepo, publisher, cfg.ActivityTopic, logger)
	statsSvc := service.NewStatsService(userRepo, usageRepo, scoreRepo)

	prod := cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authSvc, validate, logger, prod)
	userHandler := handler.NewUserHandler(userSvc, validate, logger, prod)
	usageHandler := handler.NewUsageHandler(usageSvc, validate, logger)
	scoreHandler := handler.NewScoreHandler(scoreSvc, validate, logger)
	statsHandler := handler.NewStatsHandler(statsSvc, logger)

	// 7. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(jwtSecret, logger)

	// 8. Create ServeMux router
	mux := http.NewServeMux()

	apiMux := http.NewServeMux()
	authHandler.RegisterRoutes(apiMux)
	usageHandler.RegisterRoutes(apiMux, authMiddleware)
	scoreHandler.RegisterRoutes(apiMux, authMiddleware)
	statsHandler.RegisterRoutes(apiMux, authMiddleware)
	userHandler.RegisterRoutes(apiMux, authMiddleware)

	// Unknown API routes get the 404 envelope.
	apiMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse(dto.CodeNotFound, "Resource not found"))
	})

	// Mount the API routes under /api
	mux.Handle("/api/", http.StripPrefix("/api", apiMux))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			Success   bool      `json:"success"`
			Message   string    `json:"message"`
			Timestamp time.Time `json:"timestamp"`
		}{Success: true, Message: "OK", Timestamp: time.Now().UTC()})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse(dto.CodeNotFound, "Resource not found"))
	})

	// 9. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), db, pubClient, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// removeDisableGzip is a workaround for S3 signature errors with some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
