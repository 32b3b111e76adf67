package app

import (
	"errors"
	"testing"
)

func TestInitError(t *testing.T) {
	err := &InitError{Component: "overlay", Err: ErrMountMissing}
	if got := err.Error(); got != "init overlay: gesture overlay not mounted" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrMountMissing) {
		t.Error("errors.Is(err, ErrMountMissing) = false")
	}
}

func TestComponentError(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		err  *ComponentError
		want string
	}{
		{NewComponentError("queue", "stop", base), "queue: stop: boom"},
		{NewComponentError("queue", "stop", nil), "queue: stop"},
		{NewComponentError("queue", "", base), "queue: boom"},
		{NewComponentError("queue", "", nil), "queue"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if !errors.Is(NewComponentError("queue", "stop", base), base) {
		t.Error("errors.Is did not unwrap ComponentError")
	}

	var nilErr *ComponentError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil ComponentError should be empty")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "boom", Stack: "trace"}
	if got := err.Error(); got != "panic: boom" {
		t.Errorf("Error() = %q, want %q", got, "panic: boom")
	}
}
