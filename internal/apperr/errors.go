package apperr

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingParam is a ValidationError for a required query parameter that was
// not provided.
func MissingParam(name string) *ValidationError {
	return &ValidationError{Message: "missing required parameter: " + name}
}
