package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/hind-bass/student-work-tracker/internal/events"
	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
	"github.com/hind-bass/student-work-tracker/internal/utils"
	"github.com/hind-bass/student-work-tracker/internal/validator"
)

// AuthConfig carries the token signing parameters.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type userService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	auth           AuthConfig
}

func NewUserService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, auth AuthConfig) UserService {
	if auth.TokenTTL <= 0 {
		auth.TokenTTL = 24 * time.Hour
	}
	return &userService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		auth:           auth,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Registering user", "email", email)

	if errs := s.validator.GetBusinessValidator().Validate(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Roles:        datatypes.JSON([]byte(`["student"]`)),
	}

	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", email)

	if s.eventPublisher != nil {
		event := events.NewEvent(events.TypeUserRegistered, events.UserRegisteredEvent{
			UserID: user.ID,
			Email:  user.Email,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
		}
	}

	return s.issueToken(user)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if errs := s.validator.GetBusinessValidator().Validate(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		s.logger.Warn("Login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) issueToken(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateToken(user.ID, user.Email, s.auth.JWTSecret, s.auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.NewUserResponse(user),
	}, nil
}
