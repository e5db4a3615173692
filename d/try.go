// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

// Package d provides assertion helpers and error cause-chain wrapping used
// throughout the store to distinguish structural invariant violations
// (which panic) from ordinary errors (which are returned and wrapped with
// github.com/pkg/errors for a Cause chain and stack trace).
package d

import (
	"fmt"

	"github.com/pkg/errors"
)

// Panic formats according to format and args and panics with the result.
func Panic(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}

// PanicIfError panics with err if err is non-nil.
func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// PanicIfTrue panics if b is true.
func PanicIfTrue(b bool) {
	if b {
		Panic("expected false")
	}
}

// PanicIfFalse panics if b is false.
func PanicIfFalse(b bool) {
	if !b {
		Panic("expected true")
	}
}

// PanicIfNotType panics unless the concrete type of err's root cause (see
// Unwrap) matches one of types.
// It returns err so it can be used inline, e.g. as the argument converted
// by a caller's own type assertion.
func PanicIfNotType(err error, types ...error) error {
	if !causeInTypes(err, types...) {
		Panic("unexpected error type: %T: %v", err, err)
	}
	return err
}

func causeInTypes(err error, types ...error) bool {
	cause := Unwrap(err)
	for _, t := range types {
		if sameType(cause, t) {
			return true
		}
	}
	return false
}

func sameType(a, b error) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// wrappedError pairs a message with an underlying cause, implementing the
// github.com/pkg/errors Causer interface.
type wrappedError struct {
	msg   string
	cause error
}

func (e wrappedError) Error() string { return e.msg }
func (e wrappedError) Cause() error  { return e.cause }

// Wrap annotates err with a stack trace, or returns it unchanged if it is
// already a wrappedError. Wrap(nil) is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if we, ok := err.(wrappedError); ok {
		return we
	}
	return wrappedError{err.Error(), errors.WithStack(err)}
}

// Unwrap returns the root cause of err, following Cause() chains produced
// by Wrap or github.com/pkg/errors.
func Unwrap(err error) error {
	type causer interface {
		Cause() error
	}
	for {
		c, ok := err.(causer)
		if !ok {
			return err
		}
		cause := c.Cause()
		if cause == nil {
			return err
		}
		err = cause
	}
}
