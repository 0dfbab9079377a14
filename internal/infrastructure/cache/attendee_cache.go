package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// Store はCachedAttendeeRepositoryが使うキャッシュ操作です
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedAttendeeRepository はFindByUserIDを読み取りキャッシュするリポジトリです
// 書き込み系はキャッシュを無効化してから委譲する
type CachedAttendeeRepository struct {
	repository.AttendeeRepository
	store Store
	ttl   time.Duration
}

// NewCachedAttendeeRepository は新しいCachedAttendeeRepositoryを作成します
func NewCachedAttendeeRepository(repo repository.AttendeeRepository, store Store, ttl time.Duration) *CachedAttendeeRepository {
	return &CachedAttendeeRepository{
		AttendeeRepository: repo,
		store:              store,
		ttl:                ttl,
	}
}

// FindByUserID はキャッシュを優先して参加者を取得します
// キャッシュ障害時はリポジトリへフォールバックする
func (r *CachedAttendeeRepository) FindByUserID(ctx context.Context, userID string) (*entity.Attendee, error) {
	var cached entity.Attendee
	err := r.store.Get(ctx, userID, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Warn(ctx, "attendee cache read failed", "user_id", userID, "error", err)
	}

	a, err := r.AttendeeRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, userID, a, r.ttl); err != nil {
		logger.Warn(ctx, "attendee cache write failed", "user_id", userID, "error", err)
	}
	return a, nil
}

// Update は参加者を更新しキャッシュを無効化します
func (r *CachedAttendeeRepository) Update(ctx context.Context, a *entity.Attendee) error {
	if err := r.AttendeeRepository.Update(ctx, a); err != nil {
		return err
	}
	r.invalidate(ctx, a.UserID)
	return nil
}

// Delete は参加者を削除しキャッシュを無効化します
func (r *CachedAttendeeRepository) Delete(ctx context.Context, userID string) error {
	if err := r.AttendeeRepository.Delete(ctx, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *CachedAttendeeRepository) invalidate(ctx context.Context, userID string) {
	if err := r.store.Delete(ctx, userID); err != nil {
		logger.Warn(ctx, "attendee cache invalidation failed", "user_id", userID, "error", err)
	}
}

var _ repository.AttendeeRepository = (*CachedAttendeeRepository)(nil)
