package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
)

// PresignedResumeExpiry は履歴書ダウンロードURLの既定有効期限です
const PresignedResumeExpiry = time.Hour

// ResumeStorage はMinIO上の履歴書オブジェクトを管理します
type ResumeStorage struct {
	client     *minio.Client
	bucketName string
}

// NewResumeStorage は新しいResumeStorageを作成します
func NewResumeStorage(client *MinIOClient) *ResumeStorage {
	return &ResumeStorage{
		client:     client.Client(),
		bucketName: client.BucketName(),
	}
}

// Put は履歴書オブジェクトを保存します
func (s *ResumeStorage) Put(ctx context.Context, obj service.ResumeObject) error {
	opts := minio.PutObjectOptions{ContentType: obj.ContentType}
	if obj.Filename != "" {
		opts.UserMetadata = map[string]string{"original-filename": obj.Filename}
	}

	if _, err := s.client.PutObject(ctx, s.bucketName, obj.Key, obj.Content, obj.Size, opts); err != nil {
		return fmt.Errorf("failed to put resume: %w", err)
	}
	return nil
}

// PresignGetURL はダウンロード用Presigned URLを生成します
// ファイル名はオブジェクトキーの末尾を使う
func (s *ResumeStorage) PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = PresignedResumeExpiry
	}
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf(`inline; filename="%s"`, path.Base(key)))

	u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned get URL: %w", err)
	}
	return u.String(), nil
}

// Delete は履歴書オブジェクトを削除します
// 存在しないキーはエラーにしない
func (s *ResumeStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

var _ service.ResumeStorage = (*ResumeStorage)(nil)
