package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/cache"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/database"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/event"
	infraRepo "github.com/Alessandra005/witcon2026/internal/infrastructure/repository"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/storage"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/pkg/config"
	"github.com/Alessandra005/witcon2026/pkg/jwt"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	MinIOClient *storage.MinIOClient
	TxManager   *database.TxManager

	// Services
	JWTService    *jwt.Service
	RateLimiter   *cache.RateLimiter
	ResumeStorage service.ResumeStorage
	Publisher     service.EventPublisher
	Views         *attendee.ViewBuilder

	// Repositories
	AttendeeRepo repository.AttendeeRepository

	// Attendee UseCases
	Attendee *AttendeeUseCases

	amqp   *event.Publisher
	config *config.Config
}

// Options はContainer作成時のオプションを定義します
// 指定された依存は接続せずにそのまま使う
type Options struct {
	PostgresPool  *pgxpool.Pool
	RedisClient   *redis.Client
	ResumeStorage service.ResumeStorage
	Publisher     service.EventPublisher
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
		if err := database.EnsureSchema(ctx, opts.PostgresPool); err != nil {
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, database.PoolConfigFrom(cfg.Database))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = pgClient.TxManager()
		if err := pgClient.Migrate(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		slog.Info("connected to PostgreSQL")
	}

	// Redis
	var redisClient *redis.Client
	if opts.RedisClient != nil {
		redisClient = opts.RedisClient
	} else {
		slog.Info("connecting to Redis...")
		rc, err := cache.NewRedisClient(ctx, cache.ConfigFrom(cfg.Redis))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = rc
		redisClient = rc.Client()
		slog.Info("connected to Redis")
	}
	c.RateLimiter = cache.NewRateLimiter(redisClient)

	// MinIO
	if opts.ResumeStorage != nil {
		c.ResumeStorage = opts.ResumeStorage
	} else {
		slog.Info("connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(storage.ConfigFrom(cfg.Storage))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to ensure MinIO bucket: %w", err)
		}
		c.MinIOClient = minioClient
		c.ResumeStorage = storage.NewResumeStorage(minioClient)
		slog.Info("connected to MinIO", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.BucketName)
	}

	// RabbitMQ
	if opts.Publisher != nil {
		c.Publisher = opts.Publisher
	} else {
		publisher, err := event.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.amqp = publisher
		c.Publisher = publisher
	}

	// JWT Service
	jwtService, err := jwt.NewService(jwt.ConfigFrom(cfg.JWT))
	if err != nil {
		c.Close()
		return nil, err
	}
	c.JWTService = jwtService

	// Repositories
	c.AttendeeRepo = cache.NewCachedAttendeeRepository(
		infraRepo.NewAttendeeRepository(c.TxManager),
		cache.NewRedisStore(redisClient, cache.NamespaceAttendee, cfg.Redis.CacheTTL),
		cfg.Redis.CacheTTL,
	)

	c.Views = attendee.NewViewBuilder(c.ResumeStorage, attendee.ResumePolicy{
		UploadLimit: cfg.Resume.UploadLimit,
		MaxSize:     cfg.Resume.MaxSize,
		URLExpiry:   cfg.Storage.PresignExpiry,
	})

	return c, nil
}

// InitAttendeeUseCases はAttendee UseCasesを初期化します
func (c *Container) InitAttendeeUseCases() {
	c.Attendee = NewAttendeeUseCases(c)
}

// Config は設定を返します
func (c *Container) Config() *config.Config {
	return c.config
}

// EventPublisher は接続中のRabbitMQ Publisherを返します
// Optionsで差し替えた場合はnil
func (c *Container) EventPublisher() *event.Publisher {
	return c.amqp
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.amqp != nil {
		if err := c.amqp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close RabbitMQ: %w", err))
		}
	}

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
