package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
)

// MockAttendeeStore is a mock of service.AttendeeStore
type MockAttendeeStore struct {
	mock.Mock
}

func NewMockAttendeeStore(t *testing.T) *MockAttendeeStore {
	m := &MockAttendeeStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAttendeeStore) Get(ctx context.Context, userID string) (*entity.Attendee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attendee), args.Error(1)
}

func (m *MockAttendeeStore) Replace(ctx context.Context, userID string, attendee *entity.Attendee) (*entity.Attendee, error) {
	args := m.Called(ctx, userID, attendee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attendee), args.Error(1)
}

func (m *MockAttendeeStore) PatchResume(ctx context.Context, userID string, file service.ResumeFile) (*entity.Attendee, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attendee), args.Error(1)
}

// MockAttendeeRepository is a mock of repository.AttendeeRepository
type MockAttendeeRepository struct {
	mock.Mock
}

func NewMockAttendeeRepository(t *testing.T) *MockAttendeeRepository {
	m := &MockAttendeeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAttendeeRepository) Create(ctx context.Context, attendee *entity.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *MockAttendeeRepository) Update(ctx context.Context, attendee *entity.Attendee) error {
	args := m.Called(ctx, attendee)
	return args.Error(0)
}

func (m *MockAttendeeRepository) FindByUserID(ctx context.Context, userID string) (*entity.Attendee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attendee), args.Error(1)
}

func (m *MockAttendeeRepository) FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.Attendee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attendee), args.Error(1)
}

func (m *MockAttendeeRepository) Search(ctx context.Context, search repository.AttendeeSearch) ([]*entity.Attendee, int, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.Attendee), args.Int(1), args.Error(2)
}

func (m *MockAttendeeRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockResumeStorage is a mock of service.ResumeStorage
type MockResumeStorage struct {
	mock.Mock
}

func NewMockResumeStorage(t *testing.T) *MockResumeStorage {
	m := &MockResumeStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockResumeStorage) Put(ctx context.Context, obj service.ResumeObject) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *MockResumeStorage) PresignGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockResumeStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockEventPublisher is a mock of service.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event service.AttendeeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockScanner is a mock of service.Scanner
type MockScanner struct {
	mock.Mock
}

func NewMockScanner(t *testing.T) *MockScanner {
	m := &MockScanner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScanner) Scan(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
