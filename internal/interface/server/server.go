package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Alessandra005/witcon2026/internal/interface/middleware"
	"github.com/Alessandra005/witcon2026/internal/interface/validator"
	"github.com/Alessandra005/witcon2026/pkg/config"
)

// Config はHTTPサーバーの設定です
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	BodyLimit       string // 履歴書とフォーム項目を含めた上限
	Debug           bool
}

// DefaultConfig は:8080で待ち受ける設定を返します
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		BodyLimit:       "12M",
	}
}

// ConfigFrom はアプリケーション設定のポートとデバッグ指定を既定値に重ねます
func ConfigFrom(cfg config.ServerConfig) Config {
	c := DefaultConfig()
	if cfg.Port != 0 {
		c.Port = cfg.Port
	}
	c.Debug = cfg.Debug
	return c
}

type Server struct {
	echo   *echo.Echo
	config Config
}

// NewServer はエラーハンドラーとバリデーターを設定したEchoを包みます
func NewServer(cfg Config) *Server {
	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = validator.NewCustomValidator()
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	return &Server{echo: e, config: cfg}
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run はctxがキャンセルされるまで待ち受け、その後ShutdownTimeout以内に停止します
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(s.Address())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
