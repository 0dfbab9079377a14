package profile

import (
	"fmt"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
)

// Status はレコードの読み込み状態です
type Status int

const (
	// StatusUnloaded はまだ一度も読み込みが成功していない状態
	StatusUnloaded Status = iota
	// StatusLoaded はコミット済みスナップショットが存在する状態
	StatusLoaded
)

// String は状態名を返します
func (s Status) String() string {
	if s == StatusLoaded {
		return "loaded"
	}
	return "unloaded"
}

// View は表示層に渡す派生状態です
// コントローラーの状態からの純粋な射影で、独立した更新経路は持たない
type View struct {
	Version         uint64 // 通知ごとに単調増加する
	Status          Status
	DisplayedRecord *entity.Attendee // 編集中は編集スナップショット、それ以外はコミット済み
	IsLoading       bool
	ErrorMessage    string
	IsEditing       bool
	IsSaving        bool
	IsUploading     bool
	CanEdit         bool
	CanSave         bool
	CanUpload       bool
	Icon            valueobject.ProfileIcon
	ResumeNotice    string
}

// ResumeNotice は残りアップロード回数の案内文を返します
// 表示のみで、クライアント側では回数を制限しない
func ResumeNotice(remaining *int) string {
	if remaining == nil {
		return ""
	}
	switch n := *remaining; {
	case n <= 0:
		return "You have no resume uploads remaining."
	case n == 1:
		return "You only have a limit of 1 more resume upload."
	default:
		return fmt.Sprintf("You only have a limit of %d more resume uploads.", n)
	}
}
