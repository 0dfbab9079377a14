package attendee

import (
	"context"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// Publish は参加者イベントを発行します
// 発行の失敗はリクエストを失敗させずログに残す
func Publish(ctx context.Context, publisher service.EventPublisher, eventType service.AttendeeEventType, a *entity.Attendee) {
	if publisher == nil {
		return
	}
	event := service.AttendeeEvent{
		Type:       eventType,
		AttendeeID: a.ID,
		UserID:     a.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish attendee event", "event_type", eventType, "user_id", a.UserID, "error", err)
	}
}

// DiscardResume は不要になった履歴書オブジェクトを削除します
func DiscardResume(ctx context.Context, storage service.ResumeStorage, key string) {
	if key == "" {
		return
	}
	if err := storage.Delete(ctx, key); err != nil {
		logger.Warn(ctx, "failed to delete resume object", "key", key, "error", err)
	}
}
