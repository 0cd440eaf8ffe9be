package wav

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat indicates a malformed or unsupported chunk
	// structure, or a raw frame operation on an extensible file.
	ErrInvalidFormat = errors.New("invalid or unsupported wav format")
	// ErrInvalidMode indicates an operation disallowed by the open mode.
	ErrInvalidMode = errors.New("operation not allowed by open mode")
	// ErrOSFailure indicates an underlying read/write/seek/close failure.
	ErrOSFailure = errors.New("file operation failed")
	// ErrInvalidParam indicates an out-of-range or inconsistent argument.
	ErrInvalidParam = errors.New("parameter out of range")
)

func formatErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, reason)
}

func modeErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMode, reason)
}

func osFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrOSFailure, op, err)
}

func paramErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidParam, reason)
}
