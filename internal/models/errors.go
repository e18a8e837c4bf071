package models

// FieldError describes one rejected field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// DataValidationError is returned when a payload cannot be turned into an Account.
type DataValidationError struct {
	Message string
	Details []FieldError
}

func (e *DataValidationError) Error() string {
	return e.Message
}
