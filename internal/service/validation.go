package service

import (
	"regexp"
	"strings"
	"unicode"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Path string `json:"path"`
	Msg  string `json:"msg"`
}

// ValidationError aggregates field-level failures for a 400 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Path+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

const (
	minPasswordLen    = 8
	maxDisplayNameLen = 100
	allowedSymbols    = "@$!%*?&#^()_+=-"

	msgUsernameEmail  = "username must be a valid email address"
	msgPasswordPolicy = "password must be at least 8 characters and contain a lowercase letter, an uppercase letter, a digit and one of " + allowedSymbols
	msgNameRequired   = "name must not be empty"
	msgNameTooLong    = "name must be at most 100 characters"
)

// usernames are email-shaped; full RFC validation is not the goal here
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validUsername(username string) bool {
	return emailRe.MatchString(username)
}

// validPassword enforces the composite policy: length, lowercase, uppercase,
// digit and a symbol from the fixed allowed set.
func validPassword(password string) bool {
	if len(password) < minPasswordLen {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(allowedSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// validateRegistration returns a *ValidationError listing every failing
// field, or nil when the input is acceptable. name is optional at
// registration; when present it must satisfy the display-name rules.
func validateRegistration(username, password, name string) error {
	var fields []FieldError
	if !validUsername(username) {
		fields = append(fields, FieldError{Path: "username", Msg: msgUsernameEmail})
	}
	if !validPassword(password) {
		fields = append(fields, FieldError{Path: "password", Msg: msgPasswordPolicy})
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" && len(trimmed) > maxDisplayNameLen {
		fields = append(fields, FieldError{Path: "name", Msg: msgNameTooLong})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateDisplayName checks a profile-update name (already trimmed).
func validateDisplayName(name string) error {
	var fields []FieldError
	if name == "" {
		fields = append(fields, FieldError{Path: "name", Msg: msgNameRequired})
	} else if len(name) > maxDisplayNameLen {
		fields = append(fields, FieldError{Path: "name", Msg: msgNameTooLong})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
