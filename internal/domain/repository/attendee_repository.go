package repository

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
)

// AttendeeSearch は参加者一覧の検索条件を定義します
type AttendeeSearch struct {
	Query  string // first_name, last_name, email, school の部分一致
	Limit  int
	Offset int
}

// AttendeeRepository は参加者リポジトリインターフェースを定義します
type AttendeeRepository interface {
	// Create は参加者を作成し、採番されたIDを設定します
	Create(ctx context.Context, attendee *entity.Attendee) error

	// Update は参加者を更新します
	Update(ctx context.Context, attendee *entity.Attendee) error

	// FindByUserID はユーザーIDで参加者を検索します
	FindByUserID(ctx context.Context, userID string) (*entity.Attendee, error)

	// FindByUserIDForUpdate は行ロックを取得して参加者を検索します（トランザクション内で使用）
	FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.Attendee, error)

	// Search は条件に一致する参加者と総件数を返します
	Search(ctx context.Context, search AttendeeSearch) ([]*entity.Attendee, int, error)

	// Delete は参加者を削除します
	Delete(ctx context.Context, userID string) error
}
