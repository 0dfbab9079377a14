package service

// IdentitySource はログイン中のユーザーIDを供給する認証コンテキストです
type IdentitySource interface {
	// UserID は現在のユーザーIDを返します（未ログインなら空文字）
	UserID() string

	// Changes はユーザーIDの変更を通知するチャネルを返します
	// 返された関数で購読を解除する
	Changes() (<-chan string, func())

	// Logout は現在のユーザーIDを破棄します
	Logout()
}
