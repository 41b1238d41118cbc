package errors

import (
	"errors"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"configuration error", Configf("threads must be >= 2"), 2},
		{"wrapped configuration error", Wrap(PhaseTokenize, Configf("bad config")), 2},
		{"invariant violation", Invariantf("term missing"), 3},
		{"io error", IOf(errors.New("disk full"), "writing file"), 1},
		{"plain error", errors.New("something else"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPhaseErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := WrapBatch(PhaseRemap, 3, inner)

	if !errors.Is(wrapped, inner) {
		t.Error("expected errors.Is to find the wrapped inner error")
	}

	var pe *PhaseError
	if !errors.As(wrapped, &pe) {
		t.Fatal("expected errors.As to find a *PhaseError")
	}
	if pe.Phase != PhaseRemap || pe.Batch != 3 {
		t.Errorf("PhaseError = %+v, want Phase=%s Batch=3", pe, PhaseRemap)
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(PhaseMerge, nil) != nil {
		t.Error("Wrap(phase, nil) should return nil")
	}
	if WrapBatch(PhaseMerge, 0, nil) != nil {
		t.Error("WrapBatch(phase, batch, nil) should return nil")
	}
}
