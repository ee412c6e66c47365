package buildtimer

import (
	"context"
	"testing"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/werr"
)

func TestCommandTimer_SuccessfulCommand(t *testing.T) {
	result, err := NewCommandTimer().Time(context.Background(), Options{Command: "exit 0"})
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
	if result.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", result.Duration)
	}
}

func TestCommandTimer_NonZeroExitIsNotAnError(t *testing.T) {
	result, err := NewCommandTimer().Time(context.Background(), Options{Command: "exit 7"})
	if err != nil {
		t.Fatalf("Time() error = %v, want nil (non-zero exit is reported, not returned)", err)
	}
	if result.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", result.ExitCode)
	}
}

func TestCommandTimer_TimeoutExceeded(t *testing.T) {
	_, err := NewCommandTimer().Time(context.Background(), Options{
		Command: "sleep 5", Timeout: 20 * time.Millisecond,
	})
	if !werr.Is(err, werr.CodeTimeout) {
		t.Errorf("error = %v, want timeout", err)
	}
}
