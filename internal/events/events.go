package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "student-work-tracker"
	EventVersion = "1.0"

	TypeAssignmentCompleted = "assignment.completed"
	TypeCourseDeleted       = "course.deleted"
	TypeUserRegistered      = "user.registered"
)

// Event is the envelope published to the event bus. Data holds the
// type-specific payload and must be JSON-serializable.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// AssignmentCompletedEvent is emitted when an assignment transitions
// into the completed status.
type AssignmentCompletedEvent struct {
	AssignmentID uint       `json:"assignment_id"`
	CourseID     uint       `json:"course_id"`
	UserID       uint       `json:"user_id"`
	Title        string     `json:"title"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// CourseDeletedEvent is emitted after a course and its assignments
// have been removed.
type CourseDeletedEvent struct {
	CourseID         uint   `json:"course_id"`
	UserID           uint   `json:"user_id"`
	Code             string `json:"code"`
	AssignmentsCount int64  `json:"assignments_count"`
}

// UserRegisteredEvent is emitted when a new account is created.
type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// EventPublisher publishes domain events. Implementations must be safe
// for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
