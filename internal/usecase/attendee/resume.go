package attendee

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

// ResumePolicy は履歴書アップロードの制約を定義します
type ResumePolicy struct {
	UploadLimit int           // 参加者あたりのアップロード回数上限
	MaxSize     int64         // 最大バイト数
	URLExpiry   time.Duration // ダウンロードURLの有効期限
}

// DefaultResumePolicy はデフォルトのポリシーを返します
func DefaultResumePolicy() ResumePolicy {
	return ResumePolicy{
		UploadLimit: 3,
		MaxSize:     10 << 20,
		URLExpiry:   time.Hour,
	}
}

// 受け付ける履歴書の形式
var allowedResumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ResumeUpload はアップロードされた履歴書ファイルです
type ResumeUpload struct {
	Filename string
	Content  io.Reader
}

// PreparedResume は検証済みで保存可能な履歴書です
type PreparedResume struct {
	Key    valueobject.ResumeKey
	Object service.ResumeObject
}

// PrepareResume はファイルを読み込み、サイズと形式を検証して保存用オブジェクトを作ります
// Content-Typeは宣言値ではなく内容から判定する
func PrepareResume(userID string, upload ResumeUpload, maxSize int64) (*PreparedResume, error) {
	if upload.Content == nil || upload.Filename == "" {
		return nil, apperror.NewValidationError("resume file is required",
			[]apperror.FieldError{{Field: "resume", Message: "no file selected"}})
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, maxSize+1))
	if err != nil {
		return nil, apperror.NewInvalidRequestError("failed to read resume")
	}
	if int64(len(data)) > maxSize {
		return nil, apperror.NewValidationError("resume is too large",
			[]apperror.FieldError{{Field: "resume", Message: fmt.Sprintf("must be at most %d MB", maxSize>>20)}})
	}
	if len(data) == 0 {
		return nil, apperror.NewValidationError("resume is empty",
			[]apperror.FieldError{{Field: "resume", Message: "file is empty"}})
	}

	mtype := mimetype.Detect(data)
	if !isAllowedResumeType(mtype) {
		return nil, apperror.NewValidationError("unsupported resume type",
			[]apperror.FieldError{{Field: "resume", Message: fmt.Sprintf("%s is not accepted; upload a PDF or Word document", mtype.String())}})
	}

	key, err := valueobject.NewResumeKey(userID, upload.Filename)
	if err != nil {
		return nil, apperror.NewInvalidRequestError(err.Error())
	}

	return &PreparedResume{
		Key: key,
		Object: service.ResumeObject{
			Key:         key.String(),
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			ContentType: mtype.String(),
			Filename:    upload.Filename,
		},
	}, nil
}

func isAllowedResumeType(mtype *mimetype.MIME) bool {
	for _, t := range allowedResumeTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
