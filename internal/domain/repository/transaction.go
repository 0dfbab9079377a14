package repository

import "context"

// TransactionManager は複数のリポジトリ操作を1つの単位で確定させます
// 参加者の行ロック(FindByUserIDForUpdate)はこの中で取得する
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
