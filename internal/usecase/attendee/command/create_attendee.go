package command

import (
	"context"
	"strings"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// CreateAttendeeInput は参加者登録の入力を定義します
type CreateAttendeeInput struct {
	UserID string
	Fields attendee.Fields
	Resume *attendee.ResumeUpload // 任意
}

// CreateAttendeeOutput は参加者登録の出力を定義します
type CreateAttendeeOutput struct {
	Attendee *attendee.View
}

// CreateAttendeeCommand は参加者登録コマンドです
type CreateAttendeeCommand struct {
	attendeeRepo repository.AttendeeRepository
	storage      service.ResumeStorage
	publisher    service.EventPublisher
	views        *attendee.ViewBuilder
}

// NewCreateAttendeeCommand は新しいCreateAttendeeCommandを作成します
func NewCreateAttendeeCommand(
	attendeeRepo repository.AttendeeRepository,
	storage service.ResumeStorage,
	publisher service.EventPublisher,
	views *attendee.ViewBuilder,
) *CreateAttendeeCommand {
	return &CreateAttendeeCommand{
		attendeeRepo: attendeeRepo,
		storage:      storage,
		publisher:    publisher,
		views:        views,
	}
}

// Execute は参加者を登録します
// 登録時の履歴書も1回のアップロードとして数える
func (c *CreateAttendeeCommand) Execute(ctx context.Context, input CreateAttendeeInput) (*CreateAttendeeOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, apperror.NewValidationError("userId is required",
			[]apperror.FieldError{{Field: string(entity.FieldUserID), Message: "this field is required"}})
	}

	if _, err := c.attendeeRepo.FindByUserID(ctx, userID); err == nil {
		return nil, apperror.NewConflictError("attendee already registered")
	} else if !apperror.IsNotFound(err) {
		return nil, attendee.AsAppError(err)
	}

	a := entity.NewAttendee(userID)
	if err := attendee.ApplyFields(a, input.Fields); err != nil {
		return nil, err
	}
	if err := attendee.RequireComplete(a); err != nil {
		return nil, err
	}

	var uploadedKey string
	if input.Resume != nil {
		policy := c.views.Policy()
		if !a.CanUploadResume(policy.UploadLimit) {
			return nil, apperror.NewQuotaExceededError("resume upload limit reached")
		}
		prepared, err := attendee.PrepareResume(userID, *input.Resume, policy.MaxSize)
		if err != nil {
			return nil, err
		}
		if err := c.storage.Put(ctx, prepared.Object); err != nil {
			return nil, apperror.NewInternalError(err)
		}
		uploadedKey = prepared.Key.String()
		a.AttachResume(prepared.Key)
	}

	if err := c.attendeeRepo.Create(ctx, a); err != nil {
		attendee.DiscardResume(ctx, c.storage, uploadedKey)
		return nil, attendee.AsAppError(err)
	}

	logger.Info(ctx, "attendee registered", "user_id", userID, "attendee_id", a.ID)
	attendee.Publish(ctx, c.publisher, service.AttendeeEventCreated, a)

	return &CreateAttendeeOutput{Attendee: c.views.Build(ctx, a)}, nil
}
