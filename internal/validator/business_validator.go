package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hind-bass/student-work-tracker/internal/models"
)

var (
	courseCodeRe = regexp.MustCompile(`^[A-Za-z0-9-]{2,50}$`)
	hexColorRe   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// BusinessValidator handles struct validation plus the business rules that
// cannot be expressed as struct tags.
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a validator with all custom rules registered.
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates struct tags for any request.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateCourseCreate validates course creation business rules.
func (bv *BusinessValidator) ValidateCourseCreate(req *models.CourseCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "cannot be blank",
			Value:   req.Name,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateCourseUpdate validates course update business rules.
func (bv *BusinessValidator) ValidateCourseUpdate(req *models.CourseUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "cannot be blank",
			Value:   *req.Name,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateAssignmentCreate validates assignment creation business rules.
// New assignments must be due in the future; edits of existing assignments
// may keep a past due date.
func (bv *BusinessValidator) ValidateAssignmentCreate(req *models.AssignmentCreateRequest, now time.Time) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if !req.DueDate.IsZero() && req.DueDate.Before(now) {
		errors = append(errors, ValidationError{
			Field:   "due_date",
			Message: "must be in the future",
			Value:   req.DueDate,
			Rule:    "future_date",
		})
	}

	if req.Status != "" && !req.Status.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "is not a valid status",
			Value:   req.Status,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateAssignmentUpdate validates assignment update business rules.
func (bv *BusinessValidator) ValidateAssignmentUpdate(req *models.AssignmentUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if req.Status != nil && !req.Status.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "is not a valid status",
			Value:   *req.Status,
			Rule:    "business_logic",
		})
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "priority",
			Message: "is not a valid priority",
			Value:   *req.Priority,
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateStatusChange validates the quick status-change request.
func (bv *BusinessValidator) ValidateStatusChange(req *models.ChangeStatusRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, bv.Validate(req)...)

	if !req.Status.IsValid() {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "is not a valid status",
			Value:   req.Status,
			Rule:    "business_logic",
		})
	}

	return errors
}

// registerBusinessRules registers custom rule validators.
func (bv *BusinessValidator) registerBusinessRules() {
	// Course code: 2-50 chars, letters/digits/hyphens
	bv.validate.RegisterValidation("course_code", func(fl validator.FieldLevel) bool {
		return courseCodeRe.MatchString(fl.Field().String())
	})

	// Hex color like #1a2b3c
	bv.validate.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})

	// Assignment title: 3-255 characters after trimming
	bv.validate.RegisterValidation("assignment_title", func(fl validator.FieldLevel) bool {
		title := strings.TrimSpace(fl.Field().String())
		return len(title) >= 3 && len(title) <= 255
	})

	// Completion percentage: 0-100
	bv.validate.RegisterValidation("completion_percentage", func(fl validator.FieldLevel) bool {
		p := fl.Field().Int()
		return p >= 0 && p <= 100
	})

	// Estimated/actual hours must be positive when present
	bv.validate.RegisterValidation("positive_hours", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() > 0
	})
}
