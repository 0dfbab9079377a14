package attendee

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// View はAPIで返す参加者レコードです
// 履歴書はダウンロードURLに解決済み
type View struct {
	Attendee               *entity.Attendee
	ResumeURL              string
	ResumeUploadsRemaining int
}

// ViewBuilder はエンティティからViewを組み立てます
type ViewBuilder struct {
	storage service.ResumeStorage
	policy  ResumePolicy
}

// NewViewBuilder は新しいViewBuilderを作成します
func NewViewBuilder(storage service.ResumeStorage, policy ResumePolicy) *ViewBuilder {
	return &ViewBuilder{storage: storage, policy: policy}
}

// Policy は履歴書ポリシーを返します
func (b *ViewBuilder) Policy() ResumePolicy {
	return b.policy
}

// Build はViewを組み立てます
// URLの生成に失敗した場合は履歴書なしとして返す
func (b *ViewBuilder) Build(ctx context.Context, a *entity.Attendee) *View {
	v := &View{
		Attendee:               a,
		ResumeUploadsRemaining: a.ResumeUploadsRemaining(b.policy.UploadLimit),
	}
	if a.Resume == "" {
		return v
	}

	url, err := b.storage.PresignGetURL(ctx, a.Resume, b.policy.URLExpiry)
	if err != nil {
		logger.Warn(ctx, "failed to presign resume URL", "user_id", a.UserID, "error", err)
		return v
	}
	v.ResumeURL = url
	return v
}

// BuildAll は複数のViewを組み立てます
func (b *ViewBuilder) BuildAll(ctx context.Context, attendees []*entity.Attendee) []*View {
	views := make([]*View, 0, len(attendees))
	for _, a := range attendees {
		views = append(views, b.Build(ctx, a))
	}
	return views
}
