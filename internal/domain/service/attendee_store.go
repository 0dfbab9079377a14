package service

import (
	"context"
	"io"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
)

// ResumeFile はアップロード対象として選択された履歴書ファイルを表します
type ResumeFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// IsSelected はファイルが選択されているかを判定します
func (f ResumeFile) IsSelected() bool {
	return f.Name != "" && f.Content != nil
}

// AttendeeStore はユーザーIDをキーとするリモートの参加者レコードストアです
// 成功時はいずれもサーバーが返したレコード全体を返す
type AttendeeStore interface {
	// Get はレコードを取得します (GET /attendees/{id}/)
	Get(ctx context.Context, userID string) (*entity.Attendee, error)

	// Replace はレコード全体を置き換えます (PUT /attendees/{id}/)
	Replace(ctx context.Context, userID string, attendee *entity.Attendee) (*entity.Attendee, error)

	// PatchResume は履歴書ファイルのみを部分更新します (PATCH /attendees/{id}/, multipart)
	PatchResume(ctx context.Context, userID string, file ResumeFile) (*entity.Attendee, error)
}
