package di

import (
	attendeecmd "github.com/Alessandra005/witcon2026/internal/usecase/attendee/command"
	attendeeqry "github.com/Alessandra005/witcon2026/internal/usecase/attendee/query"
)

// AttendeeUseCases はAttendee関連のUseCaseを保持します
type AttendeeUseCases struct {
	// Queries
	GetAttendee   *attendeeqry.GetAttendeeQuery
	ListAttendees *attendeeqry.ListAttendeesQuery

	// Commands
	CreateAttendee  *attendeecmd.CreateAttendeeCommand
	ReplaceAttendee *attendeecmd.ReplaceAttendeeCommand
	PatchAttendee   *attendeecmd.PatchAttendeeCommand
	DeleteAttendee  *attendeecmd.DeleteAttendeeCommand
}

// NewAttendeeUseCases は新しいAttendeeUseCasesを作成します
func NewAttendeeUseCases(c *Container) *AttendeeUseCases {
	return &AttendeeUseCases{
		// Queries
		GetAttendee:   attendeeqry.NewGetAttendeeQuery(c.AttendeeRepo, c.Views),
		ListAttendees: attendeeqry.NewListAttendeesQuery(c.AttendeeRepo, c.Views),

		// Commands
		CreateAttendee: attendeecmd.NewCreateAttendeeCommand(
			c.AttendeeRepo,
			c.ResumeStorage,
			c.Publisher,
			c.Views,
		),
		ReplaceAttendee: attendeecmd.NewReplaceAttendeeCommand(
			c.AttendeeRepo,
			c.TxManager,
			c.Publisher,
			c.Views,
		),
		PatchAttendee: attendeecmd.NewPatchAttendeeCommand(
			c.AttendeeRepo,
			c.TxManager,
			c.ResumeStorage,
			c.Publisher,
			c.Views,
		),
		DeleteAttendee: attendeecmd.NewDeleteAttendeeCommand(
			c.AttendeeRepo,
			c.ResumeStorage,
			c.Publisher,
		),
	}
}
