package errors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrReceiverDropped", ErrReceiverDropped, "winloop: event receiver dropped"},
		{"ErrEventRequired", ErrEventRequired, "winloop: event is required"},
		{"ErrHandlerRequired", ErrHandlerRequired, "winloop: handler function is required"},
		{"ErrBackendRequired", ErrBackendRequired, "winloop: window backend is required"},
		{"ErrConfigRequired", ErrConfigRequired, "winloop: configuration is required"},
		{"ErrLoggerRequired", ErrLoggerRequired, "winloop: logger is required"},
		{"ErrLoopAlreadyRun", ErrLoopAlreadyRun, "winloop: event loop has already run"},
		{"ErrHandleReleased", ErrHandleReleased, "winloop: window handle has been released"},
		{"ErrWindowClosed", ErrWindowClosed, "winloop: window has been closed"},
		{"ErrUnsupportedRequest", ErrUnsupportedRequest, "winloop: request is not supported by the backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestWindowCreationError(t *testing.T) {
	inner := errors.New("no display")

	t.Run("os kind", func(t *testing.T) {
		err := NewOsError(inner)
		if !errors.Is(err, ErrWindowCreationFailed) {
			t.Fatal("expected os error to match ErrWindowCreationFailed")
		}
		if !errors.Is(err, inner) {
			t.Fatal("expected os error to unwrap to inner error")
		}

		var wce *WindowCreationError
		if !errors.As(err, &wce) {
			t.Fatalf("expected *WindowCreationError, got %T", err)
		}
		if wce.Kind != KindOs {
			t.Errorf("Kind = %v, want %v", wce.Kind, KindOs)
		}
		if want := "winloop: operation failed in the OS: no display"; err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("unsupported kind", func(t *testing.T) {
		err := NewUnsupportedError(inner)
		var wce *WindowCreationError
		if !errors.As(err, &wce) {
			t.Fatalf("expected *WindowCreationError, got %T", err)
		}
		if wce.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", wce.Kind, KindUnsupported)
		}
		if wce.Kind.String() != "unsupported" {
			t.Errorf("Kind.String() = %q", wce.Kind.String())
		}
	})

	t.Run("does not match unrelated sentinels", func(t *testing.T) {
		if errors.Is(NewOsError(inner), ErrReceiverDropped) {
			t.Fatal("creation error must not match ErrReceiverDropped")
		}
	})
}

func TestConfigValidationError(t *testing.T) {
	inner := errors.New("invalid size")
	err := ConfigValidationError{Err: inner}

	want := "winloop: invalid configuration: invalid size"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if unwrapped := err.Unwrap(); unwrapped != inner {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, inner)
	}
}

func TestNewConfigValidationError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if err := NewConfigValidationError(nil); err != nil {
			t.Errorf("NewConfigValidationError(nil) = %v, want nil", err)
		}
	})

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		inner := errors.New("specific error")
		err := NewConfigValidationError(inner)

		var cfgErr ConfigValidationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigValidationError, got %T", err)
		}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should match wrapped error")
		}
	})
}
