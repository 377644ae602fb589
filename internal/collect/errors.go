package collect

import (
	"fmt"
	"sort"
	"strings"

	appErrors "moncollect/internal/errors"
)

var (
	// ErrServiceTagMissing is returned by ExtractService when no token
	// carries the service= prefix.
	ErrServiceTagMissing = appErrors.New(appErrors.CodeServiceTagMissing, "no service tag", nil)

	// ErrSubmitInFlight is returned when a submit is attempted while a
	// previous one has not completed.
	ErrSubmitInFlight = appErrors.New(appErrors.CodeSubmitInFlight, "a submit is already in flight", nil)

	// ErrValidation matches any validation failure returned by Pipeline.Begin.
	ErrValidation = appErrors.New(appErrors.CodeValidationFailed, "validation failed", nil)
)

func serviceTagMissingError(tags string) error {
	return appErrors.New(appErrors.CodeServiceTagMissing, fmt.Sprintf("no %s token in %q", servicePrefix, tags), nil)
}

func validationError(fe FieldErrors) error {
	return appErrors.New(appErrors.CodeValidationFailed, fe.Error(), fe)
}

// FieldErrors maps a field to its validation messages.
type FieldErrors map[Field][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field Field, msg string) {
	fe[field] = append(fe[field], msg)
}

// First returns the first message for field, or "".
func (fe FieldErrors) First(field Field) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether field has any message.
func (fe FieldErrors) Has(field Field) bool {
	return len(fe[field]) > 0
}

// Error renders messages in form field order, unknown fields last.
func (fe FieldErrors) Error() string {
	var parts []string
	for _, f := range fe.orderedFields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(fe[f], "; ")))
	}
	return strings.Join(parts, ", ")
}

func (fe FieldErrors) orderedFields() []Field {
	rank := make(map[Field]int, len(Fields))
	for i, f := range Fields {
		rank[f] = i
	}
	out := make([]Field, 0, len(fe))
	for f, msgs := range fe {
		if len(msgs) > 0 {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i] < out[j]
		}
	})
	return out
}
