package valueobject

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	ResumeKeyMaxBytes = 1024
	resumeKeyPrefix   = "resumes"
)

var (
	ErrInvalidResumeKey = errors.New("invalid resume key")
)

// ResumeKey はMinIO内の履歴書オブジェクトキーを表す値オブジェクト
// 形式: resumes/{user_id}/{object_id}{ext}
type ResumeKey struct {
	value string
}

// NewResumeKey はユーザーIDと元ファイル名からResumeKeyを生成します
func NewResumeKey(userID string, filename string) (ResumeKey, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.ContainsAny(userID, "/\\") {
		return ResumeKey{}, fmt.Errorf("%w: invalid user id", ErrInvalidResumeKey)
	}

	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}

	return ResumeKey{
		value: fmt.Sprintf("%s/%s/%s%s", resumeKeyPrefix, userID, uuid.New().String(), ext),
	}, nil
}

// ParseResumeKey は保存済みの文字列からResumeKeyを復元します
func ParseResumeKey(key string) (ResumeKey, error) {
	if len(key) > ResumeKeyMaxBytes {
		return ResumeKey{}, fmt.Errorf("%w: key too long", ErrInvalidResumeKey)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 3 || parts[0] != resumeKeyPrefix || parts[1] == "" || parts[2] == "" {
		return ResumeKey{}, fmt.Errorf("%w: %s", ErrInvalidResumeKey, key)
	}
	return ResumeKey{value: key}, nil
}

// String はキー文字列を返します
func (k ResumeKey) String() string {
	return k.value
}

// UserID はキーに含まれるユーザーIDを返します
func (k ResumeKey) UserID() string {
	parts := strings.Split(k.value, "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// IsZero は未設定かを判定します
func (k ResumeKey) IsZero() bool {
	return k.value == ""
}
