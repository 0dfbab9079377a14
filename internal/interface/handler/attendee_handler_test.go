package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/interface/handler"
	"github.com/Alessandra005/witcon2026/internal/interface/middleware"
	"github.com/Alessandra005/witcon2026/internal/interface/server"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	attendeecmd "github.com/Alessandra005/witcon2026/internal/usecase/attendee/command"
	attendeeqry "github.com/Alessandra005/witcon2026/internal/usecase/attendee/query"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
	"github.com/Alessandra005/witcon2026/pkg/jwt"
	"github.com/Alessandra005/witcon2026/tests/testutil"
	"github.com/Alessandra005/witcon2026/tests/testutil/mocks"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

type handlerTestDeps struct {
	echo      *echo.Echo
	repo      *mocks.MockAttendeeRepository
	storage   *mocks.MockResumeStorage
	publisher *mocks.MockEventPublisher
}

// newHandlerTestDeps はモックを使ったルーティング済みのEchoを返します
// claimsを渡すとそのユーザーとして認証済みになる
func newHandlerTestDeps(t *testing.T, claims *jwt.AttendeeClaims) *handlerTestDeps {
	t.Helper()

	repo := mocks.NewMockAttendeeRepository(t)
	storage := mocks.NewMockResumeStorage(t)
	publisher := mocks.NewMockEventPublisher(t)
	txManager := mocks.NewMockTransactionManager(t)
	views := attendee.NewViewBuilder(storage, attendee.ResumePolicy{UploadLimit: 3, MaxSize: 1 << 20, URLExpiry: time.Hour})

	h := handler.NewAttendeeHandler(
		attendeeqry.NewGetAttendeeQuery(repo, views),
		attendeeqry.NewListAttendeesQuery(repo, views),
		attendeecmd.NewCreateAttendeeCommand(repo, storage, publisher, views),
		attendeecmd.NewReplaceAttendeeCommand(repo, txManager, publisher, views),
		attendeecmd.NewPatchAttendeeCommand(repo, txManager, storage, publisher, views),
		attendeecmd.NewDeleteAttendeeCommand(repo, storage, publisher),
	)

	e := server.NewServer(server.DefaultConfig()).Echo()
	g := e.Group("/attendees", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims != nil {
				middleware.SetClaims(c, claims)
			}
			return next(c)
		}
	})
	g.GET("/", h.ListAttendees)
	g.POST("/create/", h.CreateAttendee)
	g.GET("/:id/", h.GetAttendee)
	g.PUT("/:id/", h.ReplaceAttendee)
	g.PATCH("/:id/", h.PatchAttendee)
	g.DELETE("/:id/", h.DeleteAttendee)

	return &handlerTestDeps{echo: e, repo: repo, storage: storage, publisher: publisher}
}

func storedAttendee(userID string) *entity.Attendee {
	a := entity.NewAttendee(userID)
	a.ID = 7
	a.FirstName = "Ada"
	a.LastName = "Lovelace"
	a.Email = "ada@example.com"
	a.School = "Harvard University"
	a.FieldOfStudy = "Computer Science"
	a.Discord = "ada#0001"
	return a
}

func TestAttendeeHandler_GetAttendee_Success(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	deps.repo.On("FindByUserID", mock.Anything, "user-1").Return(storedAttendee("user-1"), nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{Method: http.MethodGet, Path: "/attendees/user-1/"})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("id", float64(7)).
		AssertJSONPath("userId", "user-1").
		AssertJSONPath("levelOfStudy", "Undergraduate").
		AssertJSONPath("resume", nil).
		AssertJSONPath("resumeUploadsRemaining", float64(3))
}

func TestAttendeeHandler_GetAttendee_NotFound(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	deps.repo.On("FindByUserID", mock.Anything, "ghost").Return(nil, apperror.NewNotFoundError("Profile")).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{Method: http.MethodGet, Path: "/attendees/ghost/"})

	resp.AssertStatus(http.StatusNotFound).AssertJSONError("NOT_FOUND", "Profile not found")
}

func TestAttendeeHandler_GetAttendee_OtherUserForbidden(t *testing.T) {
	deps := newHandlerTestDeps(t, &jwt.AttendeeClaims{UserID: "user-2"})

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{Method: http.MethodGet, Path: "/attendees/user-1/"})

	resp.AssertStatus(http.StatusForbidden).AssertJSONError("FORBIDDEN", "")
}

func TestAttendeeHandler_ListAttendees(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	deps.repo.On("Search", mock.Anything, repository.AttendeeSearch{Query: "ada", Limit: 1, Offset: 1}).
		Return([]*entity.Attendee{storedAttendee("user-2")}, 3, nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{
		Method: http.MethodGet,
		Path:   "/attendees/?search=ada&page=2&per_page=1",
	})

	resp.AssertStatus(http.StatusOK).
		AssertJSONPath("data.0.userId", "user-2").
		AssertJSONPath("meta.pagination.page", float64(2)).
		AssertJSONPath("meta.pagination.totalPages", float64(3)).
		AssertJSONPath("meta.pagination.hasPrev", true)
}

func TestAttendeeHandler_CreateAttendee_Success(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	deps.repo.On("FindByUserID", mock.Anything, "user-1").Return(nil, apperror.NewNotFoundError("Profile")).Once()
	deps.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Attendee")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Attendee).ID = 11 }).
		Return(nil).Once()
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/attendees/create/",
		Body: map[string]string{
			"userId":       "user-1",
			"firstName":    "Ada",
			"lastName":     "Lovelace",
			"email":        "ada@example.com",
			"school":       "Harvard University",
			"fieldOfStudy": "Computer Science",
		},
	})

	resp.AssertStatus(http.StatusCreated).
		AssertJSONPath("id", float64(11)).
		AssertJSONPath("levelOfStudy", "Undergraduate")
}

func TestAttendeeHandler_CreateAttendee_InvalidBody(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/attendees/create/",
		Body: map[string]string{
			"firstName":    "Ada",
			"email":        "not-an-email",
			"levelOfStudy": "Kindergarten",
		},
	})

	resp.AssertStatus(http.StatusBadRequest).AssertJSONError("VALIDATION_ERROR", "validation failed")
}

func TestAttendeeHandler_PatchAttendee_ResumeOverQuota(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	a := storedAttendee("user-1")
	a.Resume = "resumes/user-1/old.pdf"
	a.ResumeUploadCount = 3
	deps.repo.On("FindByUserIDForUpdate", mock.Anything, "user-1").Return(a, nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{
		Method: http.MethodPatch,
		Path:   "/attendees/user-1/",
		Form: &testutil.MultipartForm{
			FileName: "resume.pdf",
			FileData: []byte(samplePDF),
		},
	})

	resp.AssertStatus(http.StatusForbidden).AssertJSONError("QUOTA_EXCEEDED", "")
}

func TestAttendeeHandler_PatchAttendee_FormFields(t *testing.T) {
	deps := newHandlerTestDeps(t, nil)
	deps.repo.On("FindByUserIDForUpdate", mock.Anything, "user-1").Return(storedAttendee("user-1"), nil).Once()
	deps.repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Attendee) bool {
		return a.GitHub == "ada-l" && a.Discord == "ada#0001"
	})).Return(nil).Once()
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{
		Method: http.MethodPatch,
		Path:   "/attendees/user-1/",
		Form:   &testutil.MultipartForm{Fields: map[string]string{"github": "ada-l"}},
	})

	resp.AssertStatus(http.StatusOK).AssertJSONPath("github", "ada-l")
}

func TestAttendeeHandler_DeleteAttendee(t *testing.T) {
	deps := newHandlerTestDeps(t, &jwt.AttendeeClaims{UserID: "user-1"})
	deps.repo.On("FindByUserID", mock.Anything, "user-1").Return(storedAttendee("user-1"), nil).Once()
	deps.repo.On("Delete", mock.Anything, "user-1").Return(nil).Once()
	deps.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	resp := testutil.DoRequest(t, deps.echo, testutil.HTTPRequest{Method: http.MethodDelete, Path: "/attendees/user-1/"})

	resp.AssertStatus(http.StatusNoContent)
}
