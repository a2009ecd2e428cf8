package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/services"
	"github.com/hind-bass/student-work-tracker/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
	exportService     services.ExportService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, exportService services.ExportService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
		exportService:     exportService,
	}
}

// CreateAssignment creates a new assignment under one of the user's courses
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body models.AssignmentCreateRequest true "Assignment data"
// @Success 201 {object} services.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req models.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetAssignment retrieves an assignment by ID
// @Summary Get assignment
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} services.AssignmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignment updates an existing assignment
// @Summary Update assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param assignment body models.AssignmentUpdateRequest true "Assignment update data"
// @Success 200 {object} services.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.AssignmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment removes an assignment
// @Summary Delete assignment
// @Tags assignments
// @Produce json
// @Param id path uint true "Assignment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Assignment deleted successfully",
	})
}

// UpdateAssignmentStatus changes the workflow status of an assignment
// @Summary Update assignment status
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param status body models.ChangeStatusRequest true "New status"
// @Success 200 {object} services.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/status [put]
func (h *AssignmentHandler) UpdateAssignmentStatus(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.UpdateStatus(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignmentProgress sets the completion percentage
// @Summary Update assignment progress
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path uint true "Assignment ID"
// @Param progress body models.UpdateProgressRequest true "Completion percentage"
// @Success 200 {object} services.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /assignments/{id}/progress [put]
func (h *AssignmentHandler) UpdateAssignmentProgress(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	assignment, err := h.assignmentService.UpdateProgress(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListAssignments returns the user's assignments, filtered and paginated
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Param page query int false "Page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param course_id query int false "Filter by course"
// @Param search query string false "Search in title and description"
// @Param overdue query bool false "Only overdue assignments"
// @Success 200 {object} models.PaginatedResponse
// @Router /assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	params := &models.ListAssignmentsParams{
		Page:     parseQueryInt(c, "page", 0),
		Size:     parseQueryInt(c, "size", 20),
		Status:   models.AssignmentStatus(c.Query("status")),
		Priority: models.AssignmentPriority(c.Query("priority")),
		CourseID: parseQueryUint(c, "course_id"),
		Search:   c.Query("search"),
		Overdue:  c.Query("overdue") == "true",
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("due_from")); err == nil {
		params.DueFrom = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("due_to")); err == nil {
		params.DueTo = &to
	}

	assignments, err := h.assignmentService.List(c.Request.Context(), userID, params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ExportAssignments downloads the user's assignments as an xlsx workbook
// @Summary Export assignments
// @Tags assignments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /assignments/export [get]
func (h *AssignmentHandler) ExportAssignments(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	h.LogRequest(c, "Exporting assignments", "user_id", userID)

	data, filename, err := h.exportService.ExportAssignments(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
