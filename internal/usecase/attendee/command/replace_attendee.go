package command

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
)

// ReplaceAttendeeInput は全体更新の入力を定義します
// Fieldsに含まれない編集可能フィールドは空になる
type ReplaceAttendeeInput struct {
	UserID string
	Fields attendee.Fields
}

// ReplaceAttendeeOutput は全体更新の出力を定義します
type ReplaceAttendeeOutput struct {
	Attendee *attendee.View
}

// ReplaceAttendeeCommand は参加者レコードの全体更新コマンドです
type ReplaceAttendeeCommand struct {
	attendeeRepo repository.AttendeeRepository
	txManager    repository.TransactionManager
	publisher    service.EventPublisher
	views        *attendee.ViewBuilder
}

// NewReplaceAttendeeCommand は新しいReplaceAttendeeCommandを作成します
func NewReplaceAttendeeCommand(
	attendeeRepo repository.AttendeeRepository,
	txManager repository.TransactionManager,
	publisher service.EventPublisher,
	views *attendee.ViewBuilder,
) *ReplaceAttendeeCommand {
	return &ReplaceAttendeeCommand{
		attendeeRepo: attendeeRepo,
		txManager:    txManager,
		publisher:    publisher,
		views:        views,
	}
}

// Execute は参加者レコードを置き換えます
// id, userId, resumeは変更されない
func (c *ReplaceAttendeeCommand) Execute(ctx context.Context, input ReplaceAttendeeInput) (*ReplaceAttendeeOutput, error) {
	draft := entity.NewAttendee(input.UserID)
	if err := attendee.ApplyFields(draft, input.Fields); err != nil {
		return nil, err
	}
	if err := attendee.RequireComplete(draft); err != nil {
		return nil, err
	}

	var updated *entity.Attendee
	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := c.attendeeRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			return err
		}
		existing.ReplaceWith(draft)
		if err := c.attendeeRepo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, attendee.AsAppError(err)
	}

	attendee.Publish(ctx, c.publisher, service.AttendeeEventUpdated, updated)

	return &ReplaceAttendeeOutput{Attendee: c.views.Build(ctx, updated)}, nil
}
