package gograph

import (
	"errors"
	"fmt"
	"strings"
)

// DuplicateKeyError is returned when adding an artist whose name is
// already tracked by the figure.
type DuplicateKeyError struct {
	Key  string
	Hint string
}

func (e *DuplicateKeyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("artist %q already tracked, %s", e.Key, e.Hint)
	}
	return fmt.Sprintf("artist %q already tracked", e.Key)
}

// NotFoundError is returned when an operation names an artist the
// figure does not track.
type NotFoundError struct {
	Key   string
	Known []string
}

func (e *NotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("artist %q not found, no artists tracked", e.Key)
	}
	return fmt.Sprintf("artist %q not found, tracked: %s", e.Key, strings.Join(e.Known, ", "))
}

// OptionError is returned when a constructor or setter receives a value
// outside its valid set.
type OptionError struct {
	Option string
	Value  string
	Valid  []string
	Reason string
}

func (e *OptionError) Error() string {
	if len(e.Valid) > 0 {
		return fmt.Sprintf("invalid %s %q, must be one of: %s", e.Option, e.Value, strings.Join(e.Valid, ", "))
	}
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
}

// IsDuplicateKey reports whether err is a DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var e *DuplicateKeyError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsOption reports whether err is an OptionError.
func IsOption(err error) bool {
	var e *OptionError
	return errors.As(err, &e)
}
