package werr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "no cause",
			err:  New(CodeTimeout, "probe did not settle"),
			want: "timeout: probe did not settle",
		},
		{
			name: "with cause",
			err:  Wrap(CodeCDPError, "evaluate failed", errors.New("socket closed")),
			want: "cdp_error: evaluate failed: socket closed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeLoadFailed, "load failed", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find wrapped cause")
	}
}

func TestIs(t *testing.T) {
	err := New(CodeUnknownFormat, "no recognizable shape")
	if !Is(err, CodeUnknownFormat) {
		t.Errorf("Is() = false, want true")
	}
	if Is(err, CodeTypeMismatch) {
		t.Errorf("Is() = true for mismatched code, want false")
	}
	if Is(nil, CodeTimeout) {
		t.Errorf("Is(nil) = true, want false")
	}
	if Is(errors.New("plain"), CodeTimeout) {
		t.Errorf("Is() on non-*Error = true, want false")
	}
}
