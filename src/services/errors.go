package services

import (
	"errors"
	"fmt"

	"caudal-server/src/models"
)

// ValidationError blocks a write and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrCategoryHasChildren = fmt.Errorf("category has subcategories: %w", models.ErrInUse)
	ErrTransferLegReadOnly = errors.New("transfer legs cannot be edited, delete the transfer and record it again")
	ErrSystemCategory      = errors.New("system categories cannot be modified")
)
