package io

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Bus errors
	ErrHandleInvalid = errors.New(f("device handle invalid"))

	// Storage errors
	ErrNameInvalid = errors.New(f("filename invalid"))
	ErrNoFS        = errors.New(f("no mount filesystem"))
)

// ErrMount reports a failure to mount a storage file.
type ErrMount struct {
	Name string
	Err  error
}

func (err *ErrMount) Error() string {
	return f("mount '%v' %v", err.Name, err.Err)
}

func (err *ErrMount) Unwrap() error {
	return err.Err
}
