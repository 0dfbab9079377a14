package command

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// DeleteAttendeeInput は参加者削除の入力を定義します
type DeleteAttendeeInput struct {
	UserID string
}

// DeleteAttendeeCommand は参加者削除コマンドです
type DeleteAttendeeCommand struct {
	attendeeRepo repository.AttendeeRepository
	storage      service.ResumeStorage
	publisher    service.EventPublisher
}

// NewDeleteAttendeeCommand は新しいDeleteAttendeeCommandを作成します
func NewDeleteAttendeeCommand(
	attendeeRepo repository.AttendeeRepository,
	storage service.ResumeStorage,
	publisher service.EventPublisher,
) *DeleteAttendeeCommand {
	return &DeleteAttendeeCommand{
		attendeeRepo: attendeeRepo,
		storage:      storage,
		publisher:    publisher,
	}
}

// Execute は参加者レコードと履歴書を削除します
func (c *DeleteAttendeeCommand) Execute(ctx context.Context, input DeleteAttendeeInput) error {
	a, err := c.attendeeRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return attendee.AsAppError(err)
	}

	if err := c.attendeeRepo.Delete(ctx, input.UserID); err != nil {
		return attendee.AsAppError(err)
	}

	attendee.DiscardResume(ctx, c.storage, a.Resume)
	logger.Info(ctx, "attendee deleted", "user_id", input.UserID)
	attendee.Publish(ctx, c.publisher, service.AttendeeEventDeleted, a)
	return nil
}
