package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hind-bass/student-work-tracker/internal/events"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
	"github.com/hind-bass/student-work-tracker/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	Auth AuthConfig

	// Global settings
	DefaultTimeout time.Duration
	Clock          Clock
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	config         ServiceManagerConfig

	// Service instances
	courseService     CourseService
	assignmentService AssignmentService
	userService       UserService
	dashboardService  DashboardService
	exportService     ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	if config.Clock == nil {
		config.Clock = SystemClock()
	}
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = 30 * time.Second
	}
	return &serviceManager{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		config:         config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	clock := sm.config.Clock

	sm.courseService = NewCourseService(sm.repo, sm.eventPublisher, sm.logger, sm.validator, clock)
	sm.logger.Info("Course service initialized")

	sm.assignmentService = NewAssignmentService(sm.repo, sm.eventPublisher, sm.logger, sm.validator, clock)
	sm.logger.Info("Assignment service initialized")

	sm.userService = NewUserService(sm.repo, sm.eventPublisher, sm.logger, sm.validator, sm.config.Auth)
	sm.logger.Info("User service initialized")

	sm.dashboardService = NewDashboardService(sm.repo, sm.logger, clock)
	sm.logger.Info("Dashboard service initialized")

	sm.exportService = NewExportService(sm.repo, sm.logger, clock)
	sm.logger.Info("Export service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.assignmentService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// HealthCheck verifies the manager and its backing repository are usable.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return ErrServiceManagerNotInitialized
	}
	if sm.shutdown {
		return ErrServiceManagerShutdown
	}
	return sm.repo.Ping(ctx)
}

// Shutdown releases resources held by the services.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			sm.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")
	return nil
}
