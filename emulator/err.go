package emulator

import (
	"errors"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Run errors
	ErrCycleLimit  = errors.New(f("cycle limit reached"))
	ErrInterrupted = errors.New(f("interrupted"))

	// Configuration errors
	ErrConfigType  = errors.New(f("wrong type"))
	ErrConfigRange = errors.New(f("out of range"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	// Opcode errors already name their address.
	var eo cpu.ErrOpcode
	if errors.As(err.Err, &eo) {
		return err.Err.Error()
	}
	return f("pc 0x%04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfig indicates a machine configuration error.
type ErrConfig struct {
	Name string // Configuration file name.
	Key  string // Global variable, if any.
	Err  error
}

func (err *ErrConfig) Error() string {
	if len(err.Key) == 0 {
		return f("%v: %v", err.Name, err.Err)
	}
	return f("%v: %v %v", err.Name, err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
