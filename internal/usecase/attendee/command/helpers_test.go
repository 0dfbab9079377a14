package command_test

import (
	"testing"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	"github.com/Alessandra005/witcon2026/tests/testutil/mocks"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

type attendeeTestDeps struct {
	attendeeRepo *mocks.MockAttendeeRepository
	txManager    *mocks.MockTransactionManager
	storage      *mocks.MockResumeStorage
	publisher    *mocks.MockEventPublisher
	views        *attendee.ViewBuilder
}

func newAttendeeTestDeps(t *testing.T) *attendeeTestDeps {
	t.Helper()
	storage := mocks.NewMockResumeStorage(t)
	return &attendeeTestDeps{
		attendeeRepo: mocks.NewMockAttendeeRepository(t),
		txManager:    mocks.NewMockTransactionManager(t),
		storage:      storage,
		publisher:    mocks.NewMockEventPublisher(t),
		views: attendee.NewViewBuilder(storage, attendee.ResumePolicy{
			UploadLimit: 3,
			MaxSize:     1 << 20,
			URLExpiry:   time.Hour,
		}),
	}
}

func completeFields() attendee.Fields {
	return attendee.Fields{
		entity.FieldFirstName:    "Ada",
		entity.FieldLastName:     "Lovelace",
		entity.FieldEmail:        "ada@example.com",
		entity.FieldSchool:       "Harvard University",
		entity.FieldFieldOfStudy: "Computer Science",
		entity.FieldLevelOfStudy: "Undergraduate",
		entity.FieldDiscord:      "ada#0001",
	}
}

func existingAttendee() *entity.Attendee {
	a := entity.NewAttendee("user-1")
	a.ID = 7
	a.FirstName = "Ada"
	a.LastName = "Lovelace"
	a.Email = "ada@example.com"
	a.School = "Harvard University"
	a.FieldOfStudy = "Computer Science"
	return a
}
