package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
	clock  Clock
}

func NewExportService(repo repositories.Repository, logger *slog.Logger, clock Clock) ExportService {
	if clock == nil {
		clock = SystemClock()
	}
	return &exportService{repo: repo, logger: logger, clock: clock}
}

var exportHeaders = []string{
	"Title", "Course", "Course Code", "Status", "Priority", "Due Date",
	"Completion %", "Estimated Hours", "Actual Hours", "Completed At",
}

// ExportAssignments renders every assignment of the user into a single
// xlsx sheet, ordered by due date.
func (s *exportService) ExportAssignments(ctx context.Context, userID uint) ([]byte, string, error) {
	s.logger.Info("Exporting assignments", "user_id", userID)

	now := s.clock.Now()
	filters := repositories.AssignmentFilters{
		UserID:    &userID,
		Now:       now,
		SortBy:    "due_date",
		SortOrder: "asc",
	}
	assignments, _, err := s.repo.Assignment().List(ctx, nil, filters)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list assignments for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Assignments"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 36)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 20)
	f.SetColWidth(sheetName, "G", "I", 14)
	f.SetColWidth(sheetName, "J", "J", 20)

	for i, header := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cellRef := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheetName, cellRef, header)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	for row, a := range assignments {
		values := []interface{}{
			a.Title,
			courseName(a),
			courseCode(a),
			a.Status.Label(),
			a.Priority.Label(),
			a.DueDate.Format("2006-01-02 15:04"),
			a.CompletionPercentage,
			floatOrEmpty(a.EstimatedHours),
			floatOrEmpty(a.ActualHours),
			timeOrEmpty(a),
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("assignments_%s.xlsx", now.Format("2006-01-02"))
	s.logger.Info("Assignments exported", "user_id", userID, "count", len(assignments), "filename", filename)

	return buf.Bytes(), filename, nil
}

func courseName(a *models.Assignment) string {
	if a.Course == nil {
		return ""
	}
	return a.Course.Name
}

func courseCode(a *models.Assignment) string {
	if a.Course == nil {
		return ""
	}
	return a.Course.Code
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func timeOrEmpty(a *models.Assignment) string {
	if a.CompletedAt == nil {
		return ""
	}
	return a.CompletedAt.Format("2006-01-02 15:04")
}
