package model

import (
	"fmt"
	"strings"
)

// Wire error codes surfaced by the service shell.
const (
	// Transport/framing.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Model validation.
	ErrBadModel = "E_BAD_MODEL"

	// Everything else.
	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadModel:        {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// FieldError names one violated field and why.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is a structured schema-violation report. It enumerates the
// violated fields rather than failing on the first one, so the caller (and
// the AI retry loop upstream) can see everything wrong at once.
type ValidationError struct {
	Kind   string       `json:"kind,omitempty"` // variant that was being validated
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Kind != "" {
		fmt.Fprintf(&b, "%s: ", e.Kind)
	}
	b.WriteString("invalid model")
	for i, f := range e.Fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Field, f.Reason)
	}
	return b.String()
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) addf(field, format string, args ...any) {
	e.add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) ok() bool { return len(e.Fields) == 0 }
