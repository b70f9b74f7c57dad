package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError rejects a row before it reaches a table. Nothing is stored
// when it is returned, so the caller still holds the submitted input.
type ValidationError struct {
	Table  string   `json:"table"`
	Fields []string `json:"fields"`
	Reason string   `json:"reason"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Table, e.Reason, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MissingFields builds the error for rows lacking their required fields.
func MissingFields(table string, fields ...string) *ValidationError {
	return &ValidationError{Table: table, Fields: fields, Reason: "required fields are missing"}
}

// InvalidField builds the error for a single out-of-domain value.
func InvalidField(table, field, reason string) *ValidationError {
	return &ValidationError{Table: table, Fields: []string{field}, Reason: reason}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
