package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
)

// MemoryResumeStorage はテスト用のインメモリservice.ResumeStorage実装です
type MemoryResumeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// エラーを返すように設定できる
	PutError     error
	PresignError error
	DeleteError  error
}

// NewMemoryResumeStorage は新しいMemoryResumeStorageを作成します
func NewMemoryResumeStorage() *MemoryResumeStorage {
	return &MemoryResumeStorage{objects: make(map[string][]byte)}
}

// Put はオブジェクトを保存します
func (s *MemoryResumeStorage) Put(ctx context.Context, obj service.ResumeObject) error {
	if s.PutError != nil {
		return s.PutError
	}
	data, err := io.ReadAll(obj.Content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Key] = data
	return nil
}

// PresignGetURL はダウンロード用URLを生成します
func (s *MemoryResumeStorage) PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.PresignError != nil {
		return "", s.PresignError
	}
	return fmt.Sprintf("http://mock-storage/download/%s?expires=%d", key, int(expiry.Seconds())), nil
}

// Delete はオブジェクトを削除します
func (s *MemoryResumeStorage) Delete(ctx context.Context, key string) error {
	if s.DeleteError != nil {
		return s.DeleteError
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Object は保存済みオブジェクトを返します
func (s *MemoryResumeStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len は保存済みのオブジェクト数を返します
func (s *MemoryResumeStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Reset は全オブジェクトを削除します
func (s *MemoryResumeStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
}

// EventRecorder は発行されたイベントを記録するservice.EventPublisher実装です
type EventRecorder struct {
	mu     sync.Mutex
	events []service.AttendeeEvent
}

// Publish はイベントを記録します
func (r *EventRecorder) Publish(ctx context.Context, event service.AttendeeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Types は記録したイベント種別を順に返します
func (r *EventRecorder) Types() []service.AttendeeEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]service.AttendeeEventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// Reset は記録を消去します
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
