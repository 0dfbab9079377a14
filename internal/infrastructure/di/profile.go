package di

import (
	"context"
	"fmt"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/attendeeapi"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/identity"
	"github.com/Alessandra005/witcon2026/internal/usecase/profile"
	"github.com/Alessandra005/witcon2026/pkg/config"
	"github.com/Alessandra005/witcon2026/pkg/jwt"
)

// ProfileApp は参加者向けプロフィール画面の依存関係を保持します
type ProfileApp struct {
	Session    *identity.Session
	Controller *profile.Controller
	CheckIn    *profile.CheckIn // スキャナーが無い環境ではnil
}

// NewProfileController は参加者APIクライアントを組み立て、セッションを購読するControllerを返します
// 購読はctxが終了するまで続く
func NewProfileController(ctx context.Context, cfg config.ClientConfig, session *identity.Session, opts ...attendeeapi.Option) *profile.Controller {
	opts = append([]attendeeapi.Option{attendeeapi.WithTokenSource(session.Token)}, opts...)
	client := attendeeapi.NewClient(attendeeapi.ConfigFrom(cfg), opts...)

	c := profile.NewController(client)
	c.Watch(ctx, session)
	return c
}

// NewProfileApp は新しいProfileAppを作成します
func NewProfileApp(ctx context.Context, cfg *config.Config, scanner service.Scanner, opts ...attendeeapi.Option) (*ProfileApp, error) {
	tokens, err := jwt.NewService(jwt.ConfigFrom(cfg.JWT))
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	session := identity.NewSession(tokens)
	app := &ProfileApp{
		Session:    session,
		Controller: NewProfileController(ctx, cfg.Client, session, opts...),
	}
	if scanner != nil {
		app.CheckIn = profile.NewCheckIn(scanner)
	}
	return app, nil
}
