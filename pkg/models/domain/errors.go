package domain

import "fmt"

// MissingInputError reports a required input key that is absent and has no default.
type MissingInputError struct {
	Section string
	Key     string
}

func (e *MissingInputError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("missing input section %s", e.Section)
	}
	return fmt.Sprintf("missing input %s.%s", e.Section, e.Key)
}

// DomainError reports a violated formula precondition, e.g. a zero divisor.
type DomainError struct {
	Field  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// MalformedInputError reports an input document that could not be read or parsed.
type MalformedInputError struct {
	Path string
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed input document: %v", e.Err)
	}
	return fmt.Sprintf("malformed input document %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
