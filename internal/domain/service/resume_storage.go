package service

import (
	"context"
	"io"
	"time"
)

// ResumeObject は保存する履歴書オブジェクトを表します
type ResumeObject struct {
	Key         string
	Content     io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// ResumeStorage は履歴書ファイルのオブジェクトストレージです
type ResumeStorage interface {
	// Put はオブジェクトを保存します
	Put(ctx context.Context, obj ResumeObject) error

	// PresignGetURL はダウンロード用Presigned URLを生成します
	PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete はオブジェクトを削除します
	Delete(ctx context.Context, key string) error
}
