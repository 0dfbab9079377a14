package di

import (
	"time"

	"github.com/Alessandra005/witcon2026/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health   *handler.HealthHandler
	Attendee *handler.AttendeeHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	healthHandler := handler.NewHealthHandler(5 * time.Second)
	for _, check := range c.HealthChecks() {
		healthHandler.RegisterCheck(check.Name, check.Check)
	}

	return &Handlers{
		Health:   healthHandler,
		Attendee: newAttendeeHandler(c),
	}
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	return &Handlers{
		Health:   nil,
		Attendee: newAttendeeHandler(c),
	}
}

func newAttendeeHandler(c *Container) *handler.AttendeeHandler {
	if c.Attendee == nil {
		c.InitAttendeeUseCases()
	}
	return handler.NewAttendeeHandler(
		c.Attendee.GetAttendee,
		c.Attendee.ListAttendees,
		c.Attendee.CreateAttendee,
		c.Attendee.ReplaceAttendee,
		c.Attendee.PatchAttendee,
		c.Attendee.DeleteAttendee,
	)
}
