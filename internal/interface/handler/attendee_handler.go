package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/interface/dto/request"
	"github.com/Alessandra005/witcon2026/internal/interface/dto/response"
	"github.com/Alessandra005/witcon2026/internal/interface/middleware"
	"github.com/Alessandra005/witcon2026/internal/interface/presenter"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
	attendeecmd "github.com/Alessandra005/witcon2026/internal/usecase/attendee/command"
	attendeeqry "github.com/Alessandra005/witcon2026/internal/usecase/attendee/query"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// AttendeeHandler は参加者レコード関連のHTTPハンドラーです
type AttendeeHandler struct {
	// Queries
	getAttendeeQuery   *attendeeqry.GetAttendeeQuery
	listAttendeesQuery *attendeeqry.ListAttendeesQuery

	// Commands
	createAttendeeCommand  *attendeecmd.CreateAttendeeCommand
	replaceAttendeeCommand *attendeecmd.ReplaceAttendeeCommand
	patchAttendeeCommand   *attendeecmd.PatchAttendeeCommand
	deleteAttendeeCommand  *attendeecmd.DeleteAttendeeCommand
}

// NewAttendeeHandler は新しいAttendeeHandlerを作成します
func NewAttendeeHandler(
	getAttendeeQuery *attendeeqry.GetAttendeeQuery,
	listAttendeesQuery *attendeeqry.ListAttendeesQuery,
	createAttendeeCommand *attendeecmd.CreateAttendeeCommand,
	replaceAttendeeCommand *attendeecmd.ReplaceAttendeeCommand,
	patchAttendeeCommand *attendeecmd.PatchAttendeeCommand,
	deleteAttendeeCommand *attendeecmd.DeleteAttendeeCommand,
) *AttendeeHandler {
	return &AttendeeHandler{
		getAttendeeQuery:       getAttendeeQuery,
		listAttendeesQuery:     listAttendeesQuery,
		createAttendeeCommand:  createAttendeeCommand,
		replaceAttendeeCommand: replaceAttendeeCommand,
		patchAttendeeCommand:   patchAttendeeCommand,
		deleteAttendeeCommand:  deleteAttendeeCommand,
	}
}

// ListAttendees は参加者一覧を返します
// @Summary 参加者一覧
// @Tags Attendees
// @Produce json
// @Param search query string false "氏名・メール・学校の部分一致"
// @Param page query int false "ページ番号"
// @Param per_page query int false "1ページあたりの件数"
// @Router /attendees/ [get]
func (h *AttendeeHandler) ListAttendees(c echo.Context) error {
	var req request.ListAttendeesRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.listAttendeesQuery.Execute(c.Request().Context(), attendeeqry.ListAttendeesInput{
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		return err
	}

	return presenter.List(c,
		response.ToAttendeeListResponse(output.Attendees),
		presenter.NewPagination(output.Page, output.PerPage, output.Total),
	)
}

// CreateAttendee は参加者を登録します
// JSONまたはmultipart/form-data（resumeファイル付き）を受け付ける
// @Summary 参加者登録
// @Tags Attendees
// @Accept json,mpfd
// @Produce json
// @Router /attendees/create/ [post]
func (h *AttendeeHandler) CreateAttendee(c echo.Context) error {
	var req request.CreateAttendeeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := authorizeAttendee(c, req.UserID); err != nil {
		return err
	}

	upload, closeFn, err := resumeFromRequest(c)
	if err != nil {
		return err
	}
	defer closeFn()

	output, err := h.createAttendeeCommand.Execute(c.Request().Context(), attendeecmd.CreateAttendeeInput{
		UserID: req.UserID,
		Fields: req.Fields(),
		Resume: upload,
	})
	if err != nil {
		return err
	}

	return presenter.RecordCreated(c, response.ToAttendeeResponse(output.Attendee))
}

// GetAttendee は参加者レコードを取得します
// @Summary 参加者取得
// @Tags Attendees
// @Produce json
// @Param id path string true "ユーザーID"
// @Router /attendees/{id}/ [get]
func (h *AttendeeHandler) GetAttendee(c echo.Context) error {
	userID := c.Param("id")
	if err := authorizeAttendee(c, userID); err != nil {
		return err
	}

	output, err := h.getAttendeeQuery.Execute(c.Request().Context(), attendeeqry.GetAttendeeInput{UserID: userID})
	if err != nil {
		return err
	}

	return presenter.Record(c, response.ToAttendeeResponse(output.Attendee))
}

// ReplaceAttendee は参加者レコード全体を置き換えます
// @Summary 参加者更新
// @Tags Attendees
// @Accept json
// @Produce json
// @Param id path string true "ユーザーID"
// @Router /attendees/{id}/ [put]
func (h *AttendeeHandler) ReplaceAttendee(c echo.Context) error {
	userID := c.Param("id")
	if err := authorizeAttendee(c, userID); err != nil {
		return err
	}

	var req request.ReplaceAttendeeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewInvalidRequestError("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.replaceAttendeeCommand.Execute(c.Request().Context(), attendeecmd.ReplaceAttendeeInput{
		UserID: userID,
		Fields: req.Fields(),
	})
	if err != nil {
		return err
	}

	return presenter.Record(c, response.ToAttendeeResponse(output.Attendee))
}

// PatchAttendee は参加者レコードを部分更新します
// 履歴書のアップロードはmultipart/form-dataのresumeパートで行う
// @Summary 参加者部分更新
// @Tags Attendees
// @Accept json,mpfd
// @Produce json
// @Param id path string true "ユーザーID"
// @Failure 403 {object} middleware.ErrorResponse "アップロード上限"
// @Router /attendees/{id}/ [patch]
func (h *AttendeeHandler) PatchAttendee(c echo.Context) error {
	userID := c.Param("id")
	if err := authorizeAttendee(c, userID); err != nil {
		return err
	}

	var req *request.PatchAttendeeRequest
	if middleware.IsMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return apperror.NewInvalidRequestError("invalid multipart form")
		}
		req = request.PatchAttendeeRequestFromForm(form)
	} else {
		req = &request.PatchAttendeeRequest{}
		if err := c.Bind(req); err != nil {
			return apperror.NewInvalidRequestError("invalid request body")
		}
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	upload, closeFn, err := resumeFromRequest(c)
	if err != nil {
		return err
	}
	defer closeFn()

	output, err := h.patchAttendeeCommand.Execute(c.Request().Context(), attendeecmd.PatchAttendeeInput{
		UserID: userID,
		Fields: req.Fields(),
		Resume: upload,
	})
	if err != nil {
		return err
	}

	return presenter.Record(c, response.ToAttendeeResponse(output.Attendee))
}

// DeleteAttendee は参加者レコードを削除します
// @Summary 参加者削除
// @Tags Attendees
// @Param id path string true "ユーザーID"
// @Success 204
// @Router /attendees/{id}/ [delete]
func (h *AttendeeHandler) DeleteAttendee(c echo.Context) error {
	userID := c.Param("id")
	if err := authorizeAttendee(c, userID); err != nil {
		return err
	}

	if err := h.deleteAttendeeCommand.Execute(c.Request().Context(), attendeecmd.DeleteAttendeeInput{UserID: userID}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// authorizeAttendee は認証が有効な場合に本人のレコードかを検証します
func authorizeAttendee(c echo.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperror.NewNotFoundError("Profile")
	}
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	if claims.UserID != userID {
		return apperror.NewForbiddenError("cannot access another attendee's profile")
	}
	return nil
}

// resumeFromRequest はmultipartのresumeパートを取り出します
// ファイルがない場合はnilを返す
func resumeFromRequest(c echo.Context) (*attendee.ResumeUpload, func(), error) {
	noop := func() {}
	if !middleware.IsMultipart(c) {
		return nil, noop, nil
	}

	fh, err := c.FormFile(string(entity.FieldResume))
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, apperror.NewInvalidRequestError("invalid resume upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperror.NewInternalError(err)
	}
	return &attendee.ResumeUpload{Filename: fh.Filename, Content: f}, closer(f), nil
}

func closer(c io.Closer) func() {
	return func() { _ = c.Close() }
}
