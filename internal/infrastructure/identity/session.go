package identity

import (
	"fmt"
	"sync"

	"github.com/Alessandra005/witcon2026/pkg/jwt"
)

// TokenValidator はトークンを検証してクレームを返します
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.AttendeeClaims, error)
}

// Session はクライアント側の認証コンテキストです
// ログイン中のユーザーIDを保持し、変更を購読者へ通知する
type Session struct {
	validator TokenValidator

	mu       sync.Mutex
	userID   string
	token    string
	seq      int
	watchers map[int]chan string
}

// NewSession は新しいSessionを作成します
func NewSession(validator TokenValidator) *Session {
	return &Session{
		validator: validator,
		watchers:  make(map[int]chan string),
	}
}

// Login はトークンを検証し、そのuidを現在のユーザーIDにします
func (s *Session) Login(token string) error {
	claims, err := s.validator.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.set(claims.UserID, token)
	return nil
}

// Logout は現在のユーザーIDを破棄します
func (s *Session) Logout() {
	s.set("", "")
}

// UserID は現在のユーザーIDを返します
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Token は現在のBearerトークンを返します
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Changes はユーザーIDの変更通知チャネルを返します
// 受信側が遅れた場合は最新の値のみを保持する
func (s *Session) Changes() (<-chan string, func()) {
	ch := make(chan string, 1)

	s.mu.Lock()
	s.seq++
	id := s.seq
	s.watchers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) set(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.userID != userID
	s.userID = userID
	s.token = token
	if !changed {
		return
	}

	for _, ch := range s.watchers {
		// 未受信の古い値を捨てて最新値を入れる
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- userID:
		default:
		}
	}
}
