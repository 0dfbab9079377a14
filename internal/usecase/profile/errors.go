package profile

import (
	"errors"
	"fmt"
)

var (
	ErrNoIdentity        = errors.New("no logged-in user")
	ErrNotLoaded         = errors.New("profile has not been loaded")
	ErrNotEditing        = errors.New("profile is not in edit mode")
	ErrOperationInFlight = errors.New("operation already in progress")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrSuperseded        = errors.New("response discarded: identity changed")
)

// FailureKind はリモート操作の失敗種別です
type FailureKind int

const (
	LoadFailure FailureKind = iota + 1
	SaveFailure
	UploadFailure
)

// String は失敗種別名を返します
func (k FailureKind) String() string {
	switch k {
	case LoadFailure:
		return "LoadFailure"
	case SaveFailure:
		return "SaveFailure"
	case UploadFailure:
		return "UploadFailure"
	default:
		return "UnknownFailure"
	}
}

// 利用者に表示するメッセージ
const (
	MessageLoadFailed   = "Failed to fetch profile data"
	MessageSaveFailed   = "Failed to save profile"
	MessageUploadFailed = "Failed to upload resume"
)

// Failure はリモート操作の失敗を表します
// 非2xxとトランスポートエラーは同じ種別にまとめられる
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func newFailure(kind FailureKind, err error) *Failure {
	f := &Failure{Kind: kind, Err: err}
	switch kind {
	case LoadFailure:
		f.Message = MessageLoadFailed
	case SaveFailure:
		f.Message = MessageSaveFailed
	case UploadFailure:
		f.Message = MessageUploadFailed
	}
	return f
}

// Error はerrorインターフェースを実装します
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap は元のエラーを返します
func (f *Failure) Unwrap() error {
	return f.Err
}

// IsFailureKind はエラーが指定種別のFailureかを判定します
func IsFailureKind(err error, kind FailureKind) bool {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
