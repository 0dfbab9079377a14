package service

import (
	"context"
	"time"
)

// AttendeeEventType は参加者イベントの種類です（ルーティングキーとして使用）
type AttendeeEventType string

const (
	AttendeeEventCreated        AttendeeEventType = "attendee.created"
	AttendeeEventUpdated        AttendeeEventType = "attendee.updated"
	AttendeeEventResumeUploaded AttendeeEventType = "attendee.resume_uploaded"
	AttendeeEventDeleted        AttendeeEventType = "attendee.deleted"
)

// AttendeeEvent は参加者レコードの変更イベントです
type AttendeeEvent struct {
	Type       AttendeeEventType `json:"type"`
	AttendeeID int64             `json:"attendee_id"`
	UserID     string            `json:"user_id"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher は参加者イベントの発行インターフェースです
type EventPublisher interface {
	Publish(ctx context.Context, event AttendeeEvent) error
}
