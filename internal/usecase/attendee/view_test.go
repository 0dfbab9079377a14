package attendee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/tests/testutil/mocks"
)

func testPolicy() attendee.ResumePolicy {
	return attendee.ResumePolicy{UploadLimit: 3, MaxSize: 1 << 20, URLExpiry: time.Hour}
}

func TestViewBuilder_Build_WithResume(t *testing.T) {
	ctx := context.Background()
	storage := mocks.NewMockResumeStorage(t)
	storage.On("PresignGetURL", ctx, "resumes/user-1/abc.pdf", time.Hour).
		Return("https://minio.local/resumes/user-1/abc.pdf?sig", nil).Once()

	a := entity.NewAttendee("user-1")
	a.Resume = "resumes/user-1/abc.pdf"
	a.ResumeUploadCount = 1

	view := attendee.NewViewBuilder(storage, testPolicy()).Build(ctx, a)

	assert.Equal(t, "https://minio.local/resumes/user-1/abc.pdf?sig", view.ResumeURL)
	assert.Equal(t, 2, view.ResumeUploadsRemaining)
	assert.Same(t, a, view.Attendee)
}

func TestViewBuilder_Build_NoResume(t *testing.T) {
	storage := mocks.NewMockResumeStorage(t)
	a := entity.NewAttendee("user-1")
	a.ResumeUploadCount = 5

	view := attendee.NewViewBuilder(storage, testPolicy()).Build(context.Background(), a)

	assert.Empty(t, view.ResumeURL)
	assert.Equal(t, 0, view.ResumeUploadsRemaining)
}

func TestViewBuilder_Build_PresignFailureOmitsURL(t *testing.T) {
	ctx := context.Background()
	storage := mocks.NewMockResumeStorage(t)
	storage.On("PresignGetURL", ctx, "resumes/user-1/abc.pdf", time.Hour).
		Return("", errors.New("minio down")).Once()

	a := entity.NewAttendee("user-1")
	a.Resume = "resumes/user-1/abc.pdf"

	view := attendee.NewViewBuilder(storage, testPolicy()).Build(ctx, a)

	assert.Empty(t, view.ResumeURL)
}
