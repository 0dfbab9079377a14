package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

const defaultRegion = "us-east-1"

// Config は履歴書バケットへの接続設定を定義します
type Config struct {
	Endpoint        string // 例: localhost:9000
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	Region          string // 空の場合はus-east-1
}

// ConfigFrom はアプリケーション設定からMinIO設定を組み立てます
func ConfigFrom(cfg config.StorageConfig) Config {
	return Config{
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		BucketName:      cfg.BucketName,
		UseSSL:          cfg.UseSSL,
		Region:          defaultRegion,
	}
}

// MinIOClient は履歴書バケットに紐づいたMinIOクライアントです
type MinIOClient struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinIOClient は新しいMinIOClientを作成します
// 接続はEnsureBucketかHealthを呼ぶまで行わない
func NewMinIOClient(cfg Config) (*MinIOClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if cfg.BucketName == "" {
		return nil, errors.New("minio bucket name is required")
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{client: client, bucket: cfg.BucketName, region: region}, nil
}

// Client は内部のminio.Clientを返します
func (m *MinIOClient) Client() *minio.Client {
	return m.client
}

// BucketName は履歴書バケット名を返します
func (m *MinIOClient) BucketName() string {
	return m.bucket
}

// Health はバケットに到達できるかを確認します
func (m *MinIOClient) Health(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}

// EnsureBucket は履歴書バケットがなければ作成します
// 複数インスタンスが同時に起動しても成功する
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return fmt.Errorf("failed to create bucket %q: %w", m.bucket, err)
	}
	return nil
}
