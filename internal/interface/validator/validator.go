package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// エラーのフィールド名はJSONキーを使う
	v.RegisterTagNameFunc(jsonFieldName)

	// カスタムバリデーション登録
	v.RegisterValidation("levelofstudy", validateLevelOfStudy)
	v.RegisterValidation("profileicon", validateProfileIcon)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return cv.formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors はバリデーションエラーをフォーマットします
func (cv *CustomValidator) formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidationError(err.Error(), nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}

	return apperror.NewValidationError("validation failed", details)
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateLevelOfStudy は学業レベルのバリデーション
func validateLevelOfStudy(fl validator.FieldLevel) bool {
	return valueobject.LevelOfStudy(fl.Field().String()).IsValid()
}

// validateProfileIcon はプロフィールアイコンのバリデーション
// 未設定は許可する
func validateProfileIcon(fl validator.FieldLevel) bool {
	icon := fl.Field().String()
	return icon == "" || valueobject.ProfileIcon(icon).IsValid()
}

// getValidationMessage はバリデーションエラーメッセージを返します
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "levelofstudy":
		return "must be one of: " + strings.Join(levelNames(), ", ")
	case "profileicon":
		return "must be one of the provided profile icons"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "validation failed"
	}
}

func levelNames() []string {
	levels := valueobject.LevelsOfStudy()
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, l.String())
	}
	return names
}
