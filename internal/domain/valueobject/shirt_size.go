package valueobject

import "strings"

// ShirtSize はアパレルサイズを表す値オブジェクト
// 任意項目のため、既知のサイズ以外も保持できる
type ShirtSize string

const (
	ShirtSizeXS  ShirtSize = "XS"
	ShirtSizeS   ShirtSize = "S"
	ShirtSizeM   ShirtSize = "M"
	ShirtSizeL   ShirtSize = "L"
	ShirtSizeXL  ShirtSize = "XL"
	ShirtSizeXXL ShirtSize = "XXL"
)

// NewShirtSize は入力を正規化してShirtSizeを生成します
func NewShirtSize(size string) ShirtSize {
	return ShirtSize(strings.ToUpper(strings.TrimSpace(size)))
}

// IsKnown は標準サイズかを判定します
func (s ShirtSize) IsKnown() bool {
	switch s {
	case ShirtSizeXS, ShirtSizeS, ShirtSizeM, ShirtSizeL, ShirtSizeXL, ShirtSizeXXL:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (s ShirtSize) String() string {
	return string(s)
}
