package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee/command"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

func (d *attendeeTestDeps) newDeleteCommand() *command.DeleteAttendeeCommand {
	return command.NewDeleteAttendeeCommand(d.attendeeRepo, d.storage, d.publisher)
}

func TestDeleteAttendeeCommand_Execute_Success(t *testing.T) {
	ctx := context.Background()
	deps := newAttendeeTestDeps(t)

	current := existingAttendee()
	current.Resume = "resumes/user-1/cv.pdf"
	deps.attendeeRepo.On("FindByUserID", ctx, "user-1").Return(current, nil).Once()
	deps.attendeeRepo.On("Delete", ctx, "user-1").Return(nil).Once()
	deps.storage.On("Delete", ctx, "resumes/user-1/cv.pdf").Return(nil).Once()
	deps.publisher.On("Publish", ctx, mock.MatchedBy(func(e service.AttendeeEvent) bool {
		return e.Type == service.AttendeeEventDeleted && e.AttendeeID == 7
	})).Return(nil).Once()

	err := deps.newDeleteCommand().Execute(ctx, command.DeleteAttendeeInput{UserID: "user-1"})

	assert.NoError(t, err)
}

func TestDeleteAttendeeCommand_Execute_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := newAttendeeTestDeps(t)

	deps.attendeeRepo.On("FindByUserID", ctx, "ghost").Return(nil, apperror.NewNotFoundError("Profile")).Once()

	err := deps.newDeleteCommand().Execute(ctx, command.DeleteAttendeeInput{UserID: "ghost"})

	assert.True(t, apperror.IsNotFound(err))
}
