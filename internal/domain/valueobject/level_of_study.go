package valueobject

import (
	"errors"
	"strings"
)

var (
	ErrInvalidLevelOfStudy = errors.New("invalid level of study")
)

// LevelOfStudy は参加者の在籍課程を表す値オブジェクト
// Note: 値域は閉じており、以下の3値以外は受け付けない
type LevelOfStudy string

const (
	LevelUndergraduate LevelOfStudy = "Undergraduate"
	LevelGraduate      LevelOfStudy = "Graduate"
	LevelPostDoctorate LevelOfStudy = "Post-Doctorate"
)

// NewLevelOfStudy は文字列からLevelOfStudyを生成します
func NewLevelOfStudy(level string) (LevelOfStudy, error) {
	l := LevelOfStudy(strings.TrimSpace(level))
	if !l.IsValid() {
		return "", ErrInvalidLevelOfStudy
	}
	return l, nil
}

// IsValid は課程が有効かを判定します
func (l LevelOfStudy) IsValid() bool {
	switch l {
	case LevelUndergraduate, LevelGraduate, LevelPostDoctorate:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (l LevelOfStudy) String() string {
	return string(l)
}

// LevelsOfStudy は選択可能な課程を表示順で返します
func LevelsOfStudy() []LevelOfStudy {
	return []LevelOfStudy{LevelUndergraduate, LevelGraduate, LevelPostDoctorate}
}
