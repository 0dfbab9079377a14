package valueobject

import "errors"

var (
	ErrInvalidProfileIcon = errors.New("invalid profile icon")
)

// ProfileIcon はプロフィールアイコンの識別子を表す値オブジェクト
type ProfileIcon string

const (
	ProfileIcon1 ProfileIcon = "profilePic1.png"
	ProfileIcon2 ProfileIcon = "profilePic2.png"
	ProfileIcon3 ProfileIcon = "profilePic3.png"
	ProfileIcon4 ProfileIcon = "profilePic4.png"
	ProfileIcon5 ProfileIcon = "profilePic5.png"
	ProfileIcon6 ProfileIcon = "profilePic6.png"

	// DefaultProfileIcon は未設定・未解決時に表示するアイコン
	DefaultProfileIcon = ProfileIcon1
)

// NewProfileIcon は文字列からProfileIconを生成します
func NewProfileIcon(icon string) (ProfileIcon, error) {
	i := ProfileIcon(icon)
	if !i.IsValid() {
		return "", ErrInvalidProfileIcon
	}
	return i, nil
}

// IsValid はアイコンが固定セットに含まれるかを判定します
func (i ProfileIcon) IsValid() bool {
	for _, icon := range ProfileIcons() {
		if i == icon {
			return true
		}
	}
	return false
}

// Resolve は表示用のアイコンを返します
// 空または未知の値はDefaultProfileIconにフォールバックします
func (i ProfileIcon) Resolve() ProfileIcon {
	if i.IsValid() {
		return i
	}
	return DefaultProfileIcon
}

// ImagePath はフロントエンドの静的リソースパスを返します
func (i ProfileIcon) ImagePath() string {
	return "/images/" + string(i.Resolve())
}

// String は文字列を返します
func (i ProfileIcon) String() string {
	return string(i)
}

// ProfileIcons はアイコンピッカーに並ぶ固定セットを返します
func ProfileIcons() []ProfileIcon {
	return []ProfileIcon{
		ProfileIcon1, ProfileIcon2, ProfileIcon3,
		ProfileIcon4, ProfileIcon5, ProfileIcon6,
	}
}
