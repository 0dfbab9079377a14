package attendee

import (
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// AsAppError はAppErrorでないエラーを内部エラーに変換します
func AsAppError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.NewInternalError(err)
}
