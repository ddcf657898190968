package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

// Validator wraps struct validation with the clinic's domain rules.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// New creates a validator with the domain enum rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates a struct and converts the result to field errors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: v.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

func (v *Validator) registerDomainRules() {
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("profession", func(fl validator.FieldLevel) bool {
		return models.Profession(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("action_type", func(fl validator.FieldLevel) bool {
		return models.ActionType(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("seance_type", func(fl validator.FieldLevel) bool {
		return models.SeanceType(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("motif_consultation", func(fl validator.FieldLevel) bool {
		return models.MotifConsultation(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("hygiene", func(fl validator.FieldLevel) bool {
		return models.HygieneBuccoDentaire(fl.Field().String()).Valid()
	})

	v.validate.RegisterValidation("mastication", func(fl validator.FieldLevel) bool {
		return models.TypeMastication(fl.Field().String()).Valid()
	})
}

// getErrorMessage returns user-friendly error messages
func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "user_role":
		return "must be ADMIN, MEDECIN, or ETUDIANT"
	case "profession":
		return "must be PARODONTAIRE or ORTHODONTAIRE"
	case "action_type":
		return "must be TRANSFER_PARO or TRANSFER_ORTHO"
	case "seance_type":
		return "must be a valid seance type"
	case "motif_consultation":
		return "must be a valid consultation motif"
	case "hygiene":
		return "must be BONNE, MOYENNE, or MAUVAISE"
	case "mastication":
		return "must be UNILATERALE or BILATERALE"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
