package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// PostgreSQLエラーコード
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
	pgNotNull         = "23502"
	pgStringTooLong   = "22001"
)

// ErrorMessages はリポジトリ単位のエラーメッセージ
type ErrorMessages struct {
	Resource string // NotFoundのリソース名 (例: "Profile")
	Conflict string // 一意制約違反のメッセージ
}

// BaseRepository はリポジトリの基底構造体
type BaseRepository struct {
	txManager *TxManager
	messages  ErrorMessages
}

// NewBaseRepository は新しいBaseRepositoryを作成する
func NewBaseRepository(txManager *TxManager, messages ErrorMessages) *BaseRepository {
	return &BaseRepository{txManager: txManager, messages: messages}
}

// Querier は現在のコンテキストで使うクエリ実行先を返す
func (r *BaseRepository) Querier(ctx context.Context) Querier {
	return r.txManager.GetQuerier(ctx)
}

// NotFound はこのリポジトリのNotFoundエラーを返す
func (r *BaseRepository) NotFound() error {
	return apperror.NewNotFoundError(r.messages.Resource)
}

// HandleError はpgxのエラーをアプリケーションエラーに変換する
// 分類できないエラーはそのまま返す
func (r *BaseRepository) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return r.NotFound()
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return apperror.NewServiceUnavailableError("database timeout")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return apperror.NewConflictError(r.messages.Conflict)
	case pgCheckViolation, pgNotNull, pgStringTooLong:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return apperror.NewValidationError("constraint violation",
			[]apperror.FieldError{{Field: field, Message: pgErr.Message}})
	}
	return err
}
