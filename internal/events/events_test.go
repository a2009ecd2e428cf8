package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEvent(t *testing.T) {
	payload := AssignmentCompletedEvent{AssignmentID: 7, CourseID: 3, UserID: 1, Title: "Final project"}
	event := NewEvent(TypeAssignmentCompleted, payload)

	if _, err := uuid.Parse(event.ID); err != nil {
		t.Errorf("Expected a UUID event ID, got %q", event.ID)
	}
	if event.Type != TypeAssignmentCompleted {
		t.Errorf("Expected type %s, got %s", TypeAssignmentCompleted, event.Type)
	}
	if event.Source != EventSource {
		t.Errorf("Expected source %s, got %s", EventSource, event.Source)
	}
	if event.Version != EventVersion {
		t.Errorf("Expected version %s, got %s", EventVersion, event.Version)
	}
	if time.Since(event.Timestamp) > time.Minute {
		t.Errorf("Expected a recent timestamp, got %v", event.Timestamp)
	}
	if _, ok := event.Data.(AssignmentCompletedEvent); !ok {
		t.Errorf("Expected payload preserved, got %T", event.Data)
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	if err := publisher.Publish(ctx, NewEvent(TypeCourseDeleted, CourseDeletedEvent{CourseID: 3})); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := publisher.Publish(ctx, NewEvent(TypeUserRegistered, UserRegisteredEvent{UserID: 5})); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(published))
	}
	if published[0].Type != TypeCourseDeleted || published[1].Type != TypeUserRegistered {
		t.Errorf("Events recorded out of order: %s, %s", published[0].Type, published[1].Type)
	}

	// The returned slice is a copy, mutating it must not affect the publisher.
	published[0].Type = "mutated"
	if publisher.GetPublishedEvents()[0].Type != TypeCourseDeleted {
		t.Error("Expected internal event list unaffected by caller mutation")
	}

	publisher.ClearEvents()
	if got := len(publisher.GetPublishedEvents()); got != 0 {
		t.Errorf("Expected no events after ClearEvents, got %d", got)
	}
}
