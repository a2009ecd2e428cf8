package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
)

// ===== RESPONSE DTOs =====

type DashboardStatsResponse struct {
	TotalAssignments     int64                 `json:"total_assignments"`
	CompletedAssignments int64                 `json:"completed_assignments"`
	OverallProgress      float64               `json:"overall_progress"`
	OverdueCount         int64                 `json:"overdue_count"`
	CourseCount          int64                 `json:"course_count"`
	StatusCounts         StatusBreakdown       `json:"status_counts"`
	CourseCounts         []CourseCountResponse `json:"course_counts"`
	Upcoming             []*AssignmentResponse `json:"upcoming"`
	RecentlyUpdated      []*AssignmentResponse `json:"recently_updated"`
	GeneratedAt          time.Time             `json:"generated_at"`
}

type StatusBreakdown struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type CourseCountResponse struct {
	CourseID   uint   `json:"course_id"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	Color      string `json:"color"`
	Count      int64  `json:"count"`
}

// ChartDataResponse holds index-aligned series for the per-course
// assignments chart.
type ChartDataResponse struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
	Colors []string `json:"colors"`
}

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
	clock  Clock
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger, clock Clock) DashboardService {
	if clock == nil {
		clock = SystemClock()
	}
	return &dashboardService{
		repo:   repo,
		logger: logger,
		clock:  clock,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, userID uint) (*DashboardStatsResponse, error) {
	s.logger.Info("Getting dashboard stats", "user_id", userID)

	now := s.clock.Now()

	statusCounts, err := s.repo.Dashboard().GetStatusCounts(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	courseCounts, err := s.repo.Dashboard().GetCourseCounts(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course counts: %w", err)
	}

	overdueCount, err := s.repo.Dashboard().GetOverdueCount(ctx, nil, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue count: %w", err)
	}

	courseCount, err := s.repo.Dashboard().GetCourseCount(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course count: %w", err)
	}

	upcoming, err := s.repo.Assignment().FindUpcoming(ctx, nil, userID, now, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming assignments: %w", err)
	}

	recent, err := s.repo.Assignment().FindRecentlyUpdated(ctx, nil, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recently updated assignments: %w", err)
	}

	breakdown := buildStatusBreakdown(statusCounts)
	total := breakdown.Todo + breakdown.InProgress + breakdown.Completed + breakdown.Cancelled

	progress := 0.0
	if total > 0 {
		progress = roundFloat(float64(breakdown.Completed)/float64(total)*100, 2)
	}

	courses := make([]CourseCountResponse, len(courseCounts))
	for i, cc := range courseCounts {
		courses[i] = CourseCountResponse{
			CourseID:   cc.CourseID,
			CourseName: cc.CourseName,
			CourseCode: cc.CourseCode,
			Color:      cc.Color,
			Count:      cc.Count,
		}
	}

	return &DashboardStatsResponse{
		TotalAssignments:     total,
		CompletedAssignments: breakdown.Completed,
		OverallProgress:      progress,
		OverdueCount:         overdueCount,
		CourseCount:          courseCount,
		StatusCounts:         breakdown,
		CourseCounts:         courses,
		Upcoming:             toAssignmentResponses(upcoming, now),
		RecentlyUpdated:      toAssignmentResponses(recent, now),
		GeneratedAt:          now,
	}, nil
}

func (s *dashboardService) GetChartData(ctx context.Context, userID uint) (*ChartDataResponse, error) {
	s.logger.Info("Getting chart data", "user_id", userID)

	courseCounts, err := s.repo.Dashboard().GetCourseCounts(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course counts: %w", err)
	}

	response := &ChartDataResponse{
		Labels: make([]string, len(courseCounts)),
		Data:   make([]int64, len(courseCounts)),
		Colors: make([]string, len(courseCounts)),
	}
	for i, cc := range courseCounts {
		response.Labels[i] = cc.CourseName
		response.Data[i] = cc.Count
		response.Colors[i] = cc.Color
	}

	return response, nil
}

// ===== HELPER FUNCTIONS =====

func buildStatusBreakdown(counts []repositories.StatusCountData) StatusBreakdown {
	var b StatusBreakdown
	for _, sc := range counts {
		switch models.AssignmentStatus(sc.Status) {
		case models.StatusTodo:
			b.Todo = sc.Count
		case models.StatusInProgress:
			b.InProgress = sc.Count
		case models.StatusCompleted:
			b.Completed = sc.Count
		case models.StatusCancelled:
			b.Cancelled = sc.Count
		}
	}
	return b
}

func toAssignmentResponses(assignments []*models.Assignment, now time.Time) []*AssignmentResponse {
	responses := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = NewAssignmentResponse(a, now)
	}
	return responses
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
