package models

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Account represents a person's contact record.
type Account struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Email       string  `json:"email" db:"email"`
	Address     string  `json:"address" db:"address"`
	PhoneNumber *string `json:"phone_number" db:"phone_number"` // Nullable
	DateJoined  Date    `json:"date_joined" db:"date_joined"`
}

// AccountPayload is the request body accepted for create and update.
type AccountPayload struct {
	Name        string  `json:"name" validate:"required,max=64"`
	Email       string  `json:"email" validate:"required,max=64"`
	Address     string  `json:"address" validate:"required,max=256"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	DateJoined  *Date   `json:"date_joined"`
}

var validate = validator.New()

func init() {
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DecodeAccountPayload reads a JSON object from r and validates it.
// Any failure is reported as a *DataValidationError.
func DecodeAccountPayload(r io.Reader) (*AccountPayload, error) {
	var payload AccountPayload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataValidationError{Message: "Invalid Account: body of request contained no data"}
		}
		return nil, &DataValidationError{Message: "Invalid Account: body of request contained bad data - " + err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &DataValidationError{Message: "Invalid Account: body of request contained data after the JSON object"}
	}
	payload.normalize()

	if err := validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, &DataValidationError{Message: "Invalid Account: " + err.Error()}
		}
		details := make([]FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, FieldError{
				Field:   fe.Field(),
				Message: fieldErrorMessage(fe),
				Type:    fe.Tag(),
			})
		}
		return nil, &DataValidationError{
			Message: "Invalid Account: missing or invalid " + details[0].Field,
			Details: details,
		}
	}
	return &payload, nil
}

// normalize strips surrounding whitespace so blank values fail the required checks.
// A blank phone number is treated as absent.
func (p *AccountPayload) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Address = strings.TrimSpace(p.Address)
	if p.PhoneNumber != nil {
		phone := strings.TrimSpace(*p.PhoneNumber)
		if phone == "" {
			p.PhoneNumber = nil
		} else {
			p.PhoneNumber = &phone
		}
	}
}

// Apply copies the mutable fields onto a. The join date is only taken for accounts
// that have not been created yet.
func (p *AccountPayload) Apply(a *Account) {
	a.Name = p.Name
	a.Email = p.Email
	a.Address = p.Address
	a.PhoneNumber = p.PhoneNumber
	if a.ID == 0 && p.DateJoined != nil {
		a.DateJoined = *p.DateJoined
	}
}

// Deserialize populates the account from a JSON request body.
func (a *Account) Deserialize(r io.Reader) error {
	payload, err := DecodeAccountPayload(r)
	if err != nil {
		return err
	}
	payload.Apply(a)
	return nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long, at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}
