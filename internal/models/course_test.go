package models

import (
	"testing"
	"time"
)

func TestComputeRollups(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	t.Run("Counts_And_Percentage", func(t *testing.T) {
		c := &Course{
			Assignments: []Assignment{
				{Status: StatusCompleted, DueDate: past},
				{Status: StatusTodo, DueDate: future},
				{Status: StatusInProgress, DueDate: past},
			},
		}
		c.ComputeRollups(now)

		if c.AssignmentsCount != 3 {
			t.Errorf("Expected 3 assignments, got %d", c.AssignmentsCount)
		}
		if c.CompletedCount != 1 || c.TodoCount != 1 || c.InProgressCount != 1 {
			t.Errorf("Unexpected status counts: todo=%d in_progress=%d completed=%d",
				c.TodoCount, c.InProgressCount, c.CompletedCount)
		}
		if c.CompletionPercentage != 33.33 {
			t.Errorf("Expected completion 33.33, got %v", c.CompletionPercentage)
		}
		if c.OverdueCount != 1 {
			t.Errorf("Expected 1 overdue (in_progress past due), got %d", c.OverdueCount)
		}
		if !c.HasOverdueAssignments {
			t.Error("Expected HasOverdueAssignments true")
		}
	})

	t.Run("Empty_Course", func(t *testing.T) {
		c := &Course{}
		c.ComputeRollups(now)

		if c.CompletionPercentage != 0 {
			t.Errorf("Expected 0 completion for empty course, got %v", c.CompletionPercentage)
		}
		if c.HasOverdueAssignments {
			t.Error("Expected no overdue flag for empty course")
		}
	})

	t.Run("Cancelled_Counted_But_Never_Overdue", func(t *testing.T) {
		c := &Course{
			Assignments: []Assignment{
				{Status: StatusCancelled, DueDate: past},
				{Status: StatusCompleted, DueDate: past},
			},
		}
		c.ComputeRollups(now)

		if c.CancelledCount != 1 {
			t.Errorf("Expected 1 cancelled, got %d", c.CancelledCount)
		}
		if c.OverdueCount != 0 {
			t.Errorf("Expected no overdue, got %d", c.OverdueCount)
		}
		// Cancelled stays in the denominator
		if c.CompletionPercentage != 50.0 {
			t.Errorf("Expected completion 50.0, got %v", c.CompletionPercentage)
		}
	})

	t.Run("Recompute_Resets_Counters", func(t *testing.T) {
		c := &Course{
			Assignments: []Assignment{{Status: StatusTodo, DueDate: future}},
		}
		c.ComputeRollups(now)
		c.Assignments = nil
		c.ComputeRollups(now)

		if c.AssignmentsCount != 0 || c.TodoCount != 0 {
			t.Errorf("Expected counters reset, got assignments=%d todo=%d", c.AssignmentsCount, c.TodoCount)
		}
	})
}
