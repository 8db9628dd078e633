// Package service provides business logic for the application.
package service

import (
	"errors"
	"strings"
	"time"
)

// Service errors.
var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports which required fields were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Tests use it to pin the calendar day.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
