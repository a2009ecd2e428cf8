package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/services"
	"github.com/hind-bass/student-work-tracker/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// CreateCourse creates a new course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body models.CourseCreateRequest true "Course data"
// @Success 201 {object} services.CourseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CourseCreateRequest
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

	course, err := h.courseService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourse retrieves a course by ID with its rollup counters
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.CourseResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetCourseDetails retrieves a course with its assignments
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.CourseDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id}/details [get]
func (h *CourseHandler) GetCourseDetails(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting course details", "course_id", id)

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	course, err := h.courseService.GetDetails(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// UpdateCourse updates an existing course
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path uint true "Course ID"
// @Param course body models.CourseUpdateRequest true "Course update data"
// @Success 200 {object} services.CourseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.CourseUpdateRequest
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

	course, err := h.courseService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course and all of its assignments
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course deleted successfully",
	})
}

// ListCourses returns the user's courses, paginated
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number (default: 0)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Param search query string false "Search in name and code"
// @Param semester query string false "Filter by semester"
// @Success 200 {object} models.PaginatedResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	params := &models.ListCoursesParams{
		Page:     parseQueryInt(c, "page", 0),
		Size:     parseQueryInt(c, "size", 20),
		Search:   c.Query("search"),
		Semester: c.Query("semester"),
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
	}

	courses, err := h.courseService.List(c.Request.Context(), userID, params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}
