package cpu

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
)

// ErrOpcode is an opcode that the 8080 does not define.
type ErrOpcode struct {
	Opcode uint8  // Opcode byte.
	Pc     uint16 // Address the opcode was fetched from.
}

func (eo ErrOpcode) Error() string {
	return f("unknown opcode 0x%02x at 0x%04x", eo.Opcode, eo.Pc)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeDecode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrLoad reports a failure to load a program image.
type ErrLoad struct {
	Path string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("load '%v' %v", err.Path, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
