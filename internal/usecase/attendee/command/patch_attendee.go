package command

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// PatchAttendeeInput は部分更新の入力を定義します
type PatchAttendeeInput struct {
	UserID string
	Fields attendee.Fields
	Resume *attendee.ResumeUpload // 任意
}

// PatchAttendeeOutput は部分更新の出力を定義します
type PatchAttendeeOutput struct {
	Attendee *attendee.View
}

// PatchAttendeeCommand は参加者レコードの部分更新コマンドです
type PatchAttendeeCommand struct {
	attendeeRepo repository.AttendeeRepository
	txManager    repository.TransactionManager
	storage      service.ResumeStorage
	publisher    service.EventPublisher
	views        *attendee.ViewBuilder
}

// NewPatchAttendeeCommand は新しいPatchAttendeeCommandを作成します
func NewPatchAttendeeCommand(
	attendeeRepo repository.AttendeeRepository,
	txManager repository.TransactionManager,
	storage service.ResumeStorage,
	publisher service.EventPublisher,
	views *attendee.ViewBuilder,
) *PatchAttendeeCommand {
	return &PatchAttendeeCommand{
		attendeeRepo: attendeeRepo,
		txManager:    txManager,
		storage:      storage,
		publisher:    publisher,
		views:        views,
	}
}

// Execute は指定されたフィールドと履歴書だけを更新します
// 履歴書のアップロード回数が上限に達している場合はQUOTA_EXCEEDEDを返す
func (c *PatchAttendeeCommand) Execute(ctx context.Context, input PatchAttendeeInput) (*PatchAttendeeOutput, error) {
	policy := c.views.Policy()

	var prepared *attendee.PreparedResume
	if input.Resume != nil {
		var err error
		prepared, err = attendee.PrepareResume(input.UserID, *input.Resume, policy.MaxSize)
		if err != nil {
			return nil, err
		}
	}

	var (
		updated     *entity.Attendee
		uploadedKey string
		previousKey string
	)
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := c.attendeeRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			return err
		}
		if err := attendee.ApplyFields(a, input.Fields); err != nil {
			return err
		}
		if err := attendee.RequireComplete(a); err != nil {
			return err
		}

		if prepared != nil {
			if !a.CanUploadResume(policy.UploadLimit) {
				return apperror.NewQuotaExceededError("resume upload limit reached")
			}
			if err := c.storage.Put(ctx, prepared.Object); err != nil {
				return apperror.NewInternalError(err)
			}
			uploadedKey = prepared.Key.String()
			previousKey = a.Resume
			a.AttachResume(prepared.Key)
		}

		if err := c.attendeeRepo.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		attendee.DiscardResume(ctx, c.storage, uploadedKey)
		return nil, attendee.AsAppError(err)
	}

	eventType := service.AttendeeEventUpdated
	if prepared != nil {
		attendee.DiscardResume(ctx, c.storage, previousKey)
		eventType = service.AttendeeEventResumeUploaded
		logger.Info(ctx, "resume uploaded",
			"user_id", updated.UserID,
			"uploads_remaining", updated.ResumeUploadsRemaining(policy.UploadLimit),
		)
	}
	attendee.Publish(ctx, c.publisher, eventType, updated)

	return &PatchAttendeeOutput{Attendee: c.views.Build(ctx, updated)}, nil
}
