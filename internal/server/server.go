package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/resumeguard/backend/internal/config"
	"github.com/resumeguard/backend/internal/queue"
	mid "github.com/resumeguard/backend/internal/server/middleware"
	"github.com/resumeguard/backend/internal/storage"
	"github.com/resumeguard/backend/internal/util"
	"github.com/resumeguard/backend/pkg/ai"
	aiollama "github.com/resumeguard/backend/pkg/ai/ollama"
	aiopenai "github.com/resumeguard/backend/pkg/ai/openai"
	"github.com/resumeguard/backend/pkg/ai/sparse"
	indexpgx "github.com/resumeguard/backend/pkg/index/pgx"
	"github.com/resumeguard/backend/pkg/logger"
	"github.com/resumeguard/backend/pkg/plagiarism"
	"github.com/resumeguard/backend/pkg/screening"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	cfg := config.Load()

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runMigrations(cfg.DatabaseURL)

	conn, err := NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3 := storage.NewS3Client(ctx)

	completion, embedder := NewAIClients()
	store := indexpgx.NewChunkIndexFromPool(conn)
	detector := plagiarism.NewDetector(embedder, store, cfg.Screening)
	screener := screening.NewScreener(completion, cfg.Screening.MaxRetries, cfg.Screening.ParserLenient)
	service := screening.NewService(screener, detector, cfg.Screening)

	app := &mid.App{
		DBConn:    conn,
		Queue:     ch,
		S3:        s3,
		Store:     store,
		Screening: service,
		Cfg:       &cfg,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))

	RegisterRoutes(e)

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// NewAIClients builds the completion client and hybrid embedder from the
// configured adapter. The worker uses the same wiring.
func NewAIClients() (ai.CompletionClient, ai.Embedder) {
	var (
		completion ai.CompletionClient
		dense      ai.DenseEmbedder
	)

	adapter := util.GetEnv("AI_ADAPTER")
	switch adapter {
	case "ollama":
		client, err := aiollama.NewClient(aiollama.NewClientParams{
			CompletionModel: util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			Dimensions:      util.GetEnvInt("AI_EMBED_DIMENSIONS", 1024),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			APIKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		completion = client
		dense = client
	default:
		client := aiopenai.NewClient(aiopenai.NewClientParams{
			CompletionModel: util.GetEnv("AI_CHAT_MODEL"),
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			Dimensions:      util.GetEnvInt("AI_EMBED_DIMENSIONS", 1024),

			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),
			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
		completion = client
		dense = client
	}

	encoder := sparse.NewEncoder(util.GetEnv("SPARSE_ENCODING"))
	embedder := ai.NewHybridEmbedder(ai.NewHybridEmbedderParams{
		Dense:     dense,
		Sparse:    encoder,
		MaxTokens: util.GetEnvInt("AI_EMBED_MAX_TOKENS", 2048),
	})
	return completion, embedder
}

// NewPool builds a pgx pool with the pgvector types registered on every
// connection. The worker shares this wiring.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	return pgxpool.NewWithConfig(ctx, pgxCfg)
}

func runMigrations(databaseURL string) {
	source := util.GetEnvString("MIGRATIONS_URL", "file://migrations")
	m, err := migrate.New(source, databaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
	logger.Info("Database schema up to date")
}
