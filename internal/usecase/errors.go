package usecase

import (
	"errors"

	"showscape/pkg/utils"
)

var ErrMovieNotFound = errors.New("movie not found")

// ValidationError carries one entry per offending request field.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}
