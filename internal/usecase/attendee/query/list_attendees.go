package query

import (
	"context"
	"strings"

	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListAttendeesInput は参加者一覧の入力を定義します
type ListAttendeesInput struct {
	Search  string
	Page    int
	PerPage int
}

// ListAttendeesOutput は参加者一覧の出力を定義します
type ListAttendeesOutput struct {
	Attendees []*attendee.View
	Total     int
	Page      int
	PerPage   int
}

// ListAttendeesQuery は参加者一覧クエリです
type ListAttendeesQuery struct {
	attendeeRepo repository.AttendeeRepository
	views        *attendee.ViewBuilder
}

// NewListAttendeesQuery は新しいListAttendeesQueryを作成します
func NewListAttendeesQuery(attendeeRepo repository.AttendeeRepository, views *attendee.ViewBuilder) *ListAttendeesQuery {
	return &ListAttendeesQuery{
		attendeeRepo: attendeeRepo,
		views:        views,
	}
}

// Execute は検索語に一致する参加者をページ単位で返します
func (q *ListAttendeesQuery) Execute(ctx context.Context, input ListAttendeesInput) (*ListAttendeesOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	switch {
	case perPage < 1:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}

	attendees, total, err := q.attendeeRepo.Search(ctx, repository.AttendeeSearch{
		Query:  strings.TrimSpace(input.Search),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, attendee.AsAppError(err)
	}

	return &ListAttendeesOutput{
		Attendees: q.views.BuildAll(ctx, attendees),
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}, nil
}
