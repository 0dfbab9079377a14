package attendee

import (
	"errors"
	"sort"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// Fields はフィールドキーから値へのマップです
// 全体更新では全ての編集可能フィールドを、部分更新では変更するものだけを含む
type Fields map[entity.AttendeeField]string

// ApplyFields はフィールドを適用し、不正な値をまとめて検証エラーとして返します
func ApplyFields(a *entity.Attendee, fields Fields) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var details []apperror.FieldError
	for _, k := range keys {
		field := entity.AttendeeField(k)
		if err := a.SetField(field, fields[field]); err != nil {
			details = append(details, apperror.FieldError{Field: k, Message: fieldMessage(err)})
		}
	}
	if len(details) > 0 {
		return apperror.NewValidationError("invalid attendee fields", details)
	}
	return nil
}

// RequireComplete は必須フィールドの欠落を検証エラーとして返します
func RequireComplete(a *entity.Attendee) error {
	missing := a.MissingRequiredFields()
	if len(missing) == 0 {
		return nil
	}
	details := make([]apperror.FieldError, 0, len(missing))
	for _, f := range missing {
		details = append(details, apperror.FieldError{Field: string(f), Message: "this field is required"})
	}
	return apperror.NewValidationError("required fields are missing", details)
}

func fieldMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrReadOnlyField):
		return "this field is read-only"
	case errors.Is(err, entity.ErrUnknownField):
		return "unknown field"
	default:
		return err.Error()
	}
}
