package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	ErrReceiverDropped      = sterrors.New("winloop: event receiver dropped")
	ErrEventRequired        = sterrors.New("winloop: event is required")
	ErrHandlerRequired      = sterrors.New("winloop: handler function is required")
	ErrBackendRequired      = sterrors.New("winloop: window backend is required")
	ErrConfigRequired       = sterrors.New("winloop: configuration is required")
	ErrLoggerRequired       = sterrors.New("winloop: logger is required")
	ErrLoopAlreadyRun       = sterrors.New("winloop: event loop has already run")
	ErrHandleReleased       = sterrors.New("winloop: window handle has been released")
	ErrWindowClosed         = sterrors.New("winloop: window has been closed")
	ErrUnsupportedRequest   = sterrors.New("winloop: request is not supported by the backend")
	ErrWindowCreationFailed = sterrors.New("winloop: window creation failed")
)

// WindowErrorKind classifies why the backend could not materialize a window.
type WindowErrorKind int

const (
	// KindOs means the operating system refused the operation.
	KindOs WindowErrorKind = iota
	// KindUnsupported means the backend cannot perform the operation at all.
	KindUnsupported
)

func (k WindowErrorKind) String() string {
	switch k {
	case KindOs:
		return "os"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// WindowCreationError is delivered inside window.Ready when the backend fails
// to create a window. OS-level failures are not transient and are never
// retried.
type WindowCreationError struct {
	Kind WindowErrorKind
	Err  error
}

func (e *WindowCreationError) Error() string {
	switch e.Kind {
	case KindUnsupported:
		return fmt.Sprintf("winloop: operation is unsupported by the window system: %v", e.Err)
	default:
		return fmt.Sprintf("winloop: operation failed in the OS: %v", e.Err)
	}
}

func (e *WindowCreationError) Unwrap() error {
	return e.Err
}

// Is lets callers match any creation failure with ErrWindowCreationFailed.
func (e *WindowCreationError) Is(target error) bool {
	return target == ErrWindowCreationFailed
}

// NewOsError wraps err as an OS-level window creation failure.
func NewOsError(err error) error {
	return &WindowCreationError{Kind: KindOs, Err: err}
}

// NewUnsupportedError wraps err as an unsupported window creation request.
func NewUnsupportedError(err error) error {
	return &WindowCreationError{Kind: KindUnsupported, Err: err}
}

// ConfigValidationError reports an invalid loop configuration.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "winloop: invalid configuration: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError wraps err, returning nil when err is nil.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
