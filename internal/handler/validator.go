package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/safe-rescue/api-notificaciones/internal/domain"
)

// AppValidator wraps go-playground/validator for echo. Failures collapse
// into one InvalidArgumentError whose message joins every field message
// with "; ", which is the error string clients already parse.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator with the notblank rule
// registered.
func NewAppValidator() *AppValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &AppValidator{validator: v}
}

// Validate validates a struct using go-playground/validator tags.
func (v *AppValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &domain.InvalidArgumentError{Message: err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return &domain.InvalidArgumentError{Message: strings.Join(messages, "; ")}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "EmitterID":
		return "El ID del emisor no puede ser nulo"
	case "Title":
		if fe.Tag() == "max" {
			return "El título debe tener entre 1 y 50 caracteres"
		}
		return "El título no puede estar en blanco"
	case "Body":
		if fe.Tag() == "max" {
			return "El contenido debe tener entre 1 y 500 caracteres"
		}
		return "El contenido no puede estar en blanco"
	case "Receivers":
		return "La lista de receptores no puede estar vacía"
	default:
		return fe.Field() + ": failed on '" + fe.Tag() + "' validation"
	}
}
