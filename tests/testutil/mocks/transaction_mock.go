package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager runs the callback inline and records how often a
// transaction was opened. Use FailWith to make the transaction itself fail.
type MockTransactionManager struct {
	mock.Mock
	Calls   int
	failErr error
}

func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// FailWith makes WithTransaction return err without calling fn
func (m *MockTransactionManager) FailWith(err error) {
	m.failErr = err
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.failErr != nil {
		return m.failErr
	}
	return fn(ctx)
}
