package index

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxIdentifierLength is the longest identifier PostgreSQL keeps without truncation.
const MaxIdentifierLength = 63

// DefaultAllowedTypes lists the access methods accepted when none are configured.
var DefaultAllowedTypes = []string{"btree", "hash", "gin", "gist"}

// Violation is a single failed constraint on a Spec field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}

// Validator checks a Spec before it is created.
type Validator struct {
	allowedTypes []string
}

// NewValidator returns a Validator accepting the given access methods.
// An empty list falls back to DefaultAllowedTypes.
func NewValidator(allowedTypes []string) *Validator {
	types := make([]string, 0, len(allowedTypes))
	for _, t := range allowedTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = slices.Clone(DefaultAllowedTypes)
	}
	return &Validator{allowedTypes: types}
}

// AllowedTypes returns the configured access methods.
func (v *Validator) AllowedTypes() []string {
	return slices.Clone(v.allowedTypes)
}

// Validate returns every violation found on s. An empty result means s can be created.
func (v *Validator) Validate(s *Spec) []Violation {
	var violations []Violation

	violations = append(violations, checkLength("tableName", s.TableName(), "TableName")...)
	violations = append(violations, checkLength("name", s.Name(), "Name")...)

	columns := s.Columns()
	if len(columns) == 0 {
		violations = append(violations, Violation{Field: "columns", Message: "You must specify at least one column"})
	}
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("columns[%d]", i),
				Message: "Column must not be blank",
			})
		}
	}

	if using := s.Using(); using != "" && !slices.Contains(v.allowedTypes, using) {
		violations = append(violations, Violation{
			Field: "using",
			Message: fmt.Sprintf("Index type %s is not allowed. List of allowed types: %s.",
				using, strings.Join(v.allowedTypes, ", ")),
		})
	}

	return violations
}

func checkLength(field, value, label string) []Violation {
	n := utf8.RuneCountInString(value)
	switch {
	case n < 1:
		return []Violation{{Field: field, Message: label + " must be set"}}
	case n > MaxIdentifierLength:
		return []Violation{{Field: field, Message: label + " is too long"}}
	}
	return nil
}
