package app_errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUserExists = errors.New("User already exists")
var ErrUserNotFound = errors.New("User not found")
var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrWeakPassword = errors.New("Password must be at least 8 characters and contain an uppercase letter, a lowercase letter, a digit and a special character")
var ErrTokenInvalid = errors.New("Token is not valid")
var ErrTokenRevoked = errors.New("Refresh token has been revoked")
var ErrNoToken = errors.New("No token, authorization denied")
var ErrBookNotFound = errors.New("Book not found")
var ErrInvalidBookID = errors.New("Invalid Book ID format.")
var ErrDuplicateISBN = errors.New("A book with this ISBN already exists.")
var ErrEntryExists = errors.New("Book already in your library")
var ErrEntryNotFound = errors.New("Book not found in your library")
var ErrInvalidRole = errors.New("Invalid role")
var ErrNotImage = errors.New("Uploaded file must be an image")
var ErrFileSize = errors.New("Cover image exceeds the 5MB limit")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field messages so a request can report every
// violation at once instead of failing on the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validation Error"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "Validation Error: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
