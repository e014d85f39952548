package core

import "fmt"

// Reason classifies why an input could not be turned into a Conversation.
type Reason string

const (
	ReasonUnrecognizedFormat   Reason = "unrecognized_format"
	ReasonMissingRequiredField Reason = "missing_required_field"
	ReasonInvalidRole          Reason = "invalid_role"
	ReasonEmptyConversation    Reason = "empty_conversation"
	ReasonMalformedInput       Reason = "malformed_input"
)

// FormatError reports a well-formed document that does not match any known
// conversation schema, or matches one but violates it.
type FormatError struct {
	Reason Reason
	Source SourceFormat // empty when no schema matched
	Detail string
}

func (e *FormatError) Error() string {
	msg := "format error: " + string(e.Reason)
	if e.Source != "" {
		msg += " (" + string(e.Source) + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches any FormatError with the same reason, so callers can write
// errors.Is(err, core.ErrInvalidRole).
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrUnrecognizedFormat   = &FormatError{Reason: ReasonUnrecognizedFormat}
	ErrMissingRequiredField = &FormatError{Reason: ReasonMissingRequiredField}
	ErrInvalidRole          = &FormatError{Reason: ReasonInvalidRole}
	ErrEmptyConversation    = &FormatError{Reason: ReasonEmptyConversation}
	ErrMalformedInput       = &FormatError{Reason: ReasonMalformedInput}
)

// ParseError reports input that is not well-formed in its underlying syntax
// (invalid UTF-8, broken JSON, unreadable markup). It is raised before
// format detection runs.
type ParseError struct {
	Syntax string // "utf-8", "json" or "html"
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse error: invalid %s", e.Syntax)
	}
	return fmt.Sprintf("parse error: invalid %s: %v", e.Syntax, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
