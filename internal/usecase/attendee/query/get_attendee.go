package query

import (
	"context"

	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
)

// GetAttendeeInput は参加者取得の入力を定義します
type GetAttendeeInput struct {
	UserID string
}

// GetAttendeeOutput は参加者取得の出力を定義します
type GetAttendeeOutput struct {
	Attendee *attendee.View
}

// GetAttendeeQuery は参加者取得クエリです
type GetAttendeeQuery struct {
	attendeeRepo repository.AttendeeRepository
	views        *attendee.ViewBuilder
}

// NewGetAttendeeQuery は新しいGetAttendeeQueryを作成します
func NewGetAttendeeQuery(attendeeRepo repository.AttendeeRepository, views *attendee.ViewBuilder) *GetAttendeeQuery {
	return &GetAttendeeQuery{
		attendeeRepo: attendeeRepo,
		views:        views,
	}
}

// Execute はユーザーIDで参加者を取得します
func (q *GetAttendeeQuery) Execute(ctx context.Context, input GetAttendeeInput) (*GetAttendeeOutput, error) {
	a, err := q.attendeeRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, attendee.AsAppError(err)
	}
	return &GetAttendeeOutput{Attendee: q.views.Build(ctx, a)}, nil
}
