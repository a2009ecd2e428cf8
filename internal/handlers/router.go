package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hind-bass/student-work-tracker/internal/services"
	"github.com/hind-bass/student-work-tracker/internal/utils"
)

type HandlerManager struct {
	courseHandler     *CourseHandler
	assignmentHandler *AssignmentHandler
	dashboardHandler  *DashboardHandler
	userHandler       *UserHandler
	jwtSecret         string
	healthCheck       func(c *gin.Context) error
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
) *HandlerManager {
	return &HandlerManager{
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), serviceManager.Export(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		jwtSecret:         jwtSecret,
		healthCheck: func(c *gin.Context) error {
			return serviceManager.HealthCheck(c.Request.Context())
		},
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.userHandler.Register)
			auth.POST("/login", hm.userHandler.Login)
		}

		// Everything else requires a valid token
		authed := v1.Group("")
		authed.Use(JWTAuthMiddleware(hm.jwtSecret))
		{
			courses := authed.Group("/courses")
			{
				courses.POST("", hm.courseHandler.CreateCourse)
				courses.GET("", hm.courseHandler.ListCourses)
				courses.GET("/:id", hm.courseHandler.GetCourse)
				courses.GET("/:id/details", hm.courseHandler.GetCourseDetails)
				courses.PUT("/:id", hm.courseHandler.UpdateCourse)
				courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			}

			assignments := authed.Group("/assignments")
			{
				assignments.POST("", hm.assignmentHandler.CreateAssignment)
				assignments.GET("", hm.assignmentHandler.ListAssignments)
				assignments.GET("/export", hm.assignmentHandler.ExportAssignments)
				assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
				assignments.PUT("/:id", hm.assignmentHandler.UpdateAssignment)
				assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)

				// Workflow operations
				assignments.PUT("/:id/status", hm.assignmentHandler.UpdateAssignmentStatus)
				assignments.PUT("/:id/progress", hm.assignmentHandler.UpdateAssignmentProgress)
			}

			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/stats", hm.dashboardHandler.GetDashboardStats)
				dashboard.GET("/chart-data", hm.dashboardHandler.GetChartData)
			}

			users := authed.Group("/users")
			{
				users.GET("/me", hm.userHandler.Me)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if hm.healthCheck != nil {
			if err := hm.healthCheck(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": "student-work-tracker",
					"error":   err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "student-work-tracker",
		})
	})
}
