package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Alessandra005/witcon2026/internal/infrastructure/di"
	"github.com/Alessandra005/witcon2026/internal/interface/router"
	"github.com/Alessandra005/witcon2026/internal/interface/server"
	"github.com/Alessandra005/witcon2026/pkg/config"
)

// TestServer holds all test server dependencies
type TestServer struct {
	Echo      *echo.Echo
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Container *di.Container
	Storage   *MemoryResumeStorage
	Events    *EventRecorder
}

// TestServerOption customizes the application config before the container is built
type TestServerOption func(cfg *config.Config)

// WithRequireAuth requires a bearer token on the attendee endpoints
func WithRequireAuth() TestServerOption {
	return func(cfg *config.Config) {
		cfg.Security.RequireAuth = true
	}
}

// WithResumeUploadLimit overrides the per-attendee resume upload limit
func WithResumeUploadLimit(limit int) TestServerOption {
	return func(cfg *config.Config) {
		cfg.Resume.UploadLimit = limit
	}
}

// NewTestServer creates a fully configured test server
// PostgreSQL and Redis are real; object storage and the event broker are in-memory
func NewTestServer(t *testing.T, opts ...TestServerOption) *TestServer {
	t.Helper()

	testConfig := DefaultTestConfig()
	pool, redisClient := SetupTestEnvironment(t)

	cfg := NewTestConfig(testConfig)
	for _, opt := range opts {
		opt(cfg)
	}

	storage := NewMemoryResumeStorage()
	events := &EventRecorder{}

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		PostgresPool:  pool,
		RedisClient:   redisClient,
		ResumeStorage: storage,
		Publisher:     events,
	})
	require.NoError(t, err)
	container.InitAttendeeUseCases()

	srv := server.NewServer(server.DefaultConfig())
	e := srv.Echo()

	registry := prometheus.NewRegistry()
	router.NewRouter(e, di.NewHandlersForTest(container), di.NewMiddlewares(container, registry), registry).Setup()

	return &TestServer{
		Echo:      e,
		Pool:      pool,
		Redis:     redisClient,
		Container: container,
		Storage:   storage,
		Events:    events,
	}
}

// NewTestConfig returns an application config pointing at the test environment
func NewTestConfig(tc TestConfig) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{URL: tc.DatabaseURL},
		Redis:    config.RedisConfig{URL: tc.RedisURL, CacheTTL: time.Minute},
		Storage:  config.StorageConfig{BucketName: "witcon-resumes-test", PresignExpiry: time.Hour},
		JWT: config.JWTConfig{
			SecretKey:   tc.JWTSecretKey,
			Issuer:      "witcon-test",
			Audience:    []string{"witcon-api-test"},
			TokenExpiry: 15 * time.Minute,
		},
		Resume: config.ResumeConfig{
			UploadLimit: 3,
			MaxSize:     1 << 20,
			RateLimit:   100,
			RateWindow:  time.Hour,
		},
	}
}

// Cleanup clears all test data
func (s *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	TruncateTables(t, s.Pool, "attendees")
	FlushRedis(t, s.Redis)
	s.Storage.Reset()
	s.Events.Reset()
}

// IssueToken returns a bearer token for the given user
func (s *TestServer) IssueToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.Container.JWTService.GenerateToken(userID, userID+"@example.com")
	require.NoError(t, err)
	return token
}
