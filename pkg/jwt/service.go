package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

const minSecretLength = 32

var (
	ErrSecretKeyRequired = errors.New("jwt secret key is required")
	ErrSecretKeyTooShort = fmt.Errorf("jwt secret key must be at least %d characters", minSecretLength)
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrMissingUserID     = errors.New("token has no uid claim")
)

// Config はトークンの署名と検証の設定です
type Config struct {
	SecretKey   string
	Issuer      string
	Audience    string
	TokenExpiry time.Duration
}

// ConfigFrom はアプリケーション設定から変換します
// Audienceは先頭の1つだけを検証対象にする
func ConfigFrom(cfg config.JWTConfig) Config {
	c := Config{SecretKey: cfg.SecretKey, Issuer: cfg.Issuer, TokenExpiry: cfg.TokenExpiry}
	if len(cfg.Audience) > 0 {
		c.Audience = cfg.Audience[0]
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.SecretKey == "":
		return ErrSecretKeyRequired
	case len(c.SecretKey) < minSecretLength:
		return ErrSecretKeyTooShort
	}
	return nil
}

// Service は参加者トークンをHS256で発行・検証します
type Service struct {
	config Config
	key    []byte
	parser *jwt.Parser
}

func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Service{config: cfg, key: []byte(cfg.SecretKey), parser: jwt.NewParser(opts...)}, nil
}

// GenerateToken はuidクレームにuserIDを入れたトークンを返します
func (s *Service) GenerateToken(userID, email string) (string, error) {
	if userID == "" {
		return "", ErrMissingUserID
	}

	now := time.Now()
	claims := &AttendeeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
		UserID: userID,
		Email:  email,
	}
	if s.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken は署名と登録済みクレームを検証します
// 期限切れはErrTokenExpired、それ以外の失敗はErrInvalidTokenを包んで返す
func (s *Service) ValidateToken(raw string) (*AttendeeClaims, error) {
	claims := &AttendeeClaims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	case claims.UserID == "":
		return nil, ErrMissingUserID
	}
	return claims, nil
}
