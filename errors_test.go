package bitfx

import (
	"errors"
	"testing"
)

func TestStageErrorMessage(t *testing.T) {
	cause := errors.New("unexpected EOF")

	tests := []struct {
		err  *StageError
		want string
	}{
		{&StageError{Stage: StageDecode, Frame: 12, Err: cause}, "decode (frame 12): unexpected EOF"},
		{&StageError{Stage: StageLoad, Frame: -1, Err: cause}, "load: unexpected EOF"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, cause) {
			t.Errorf("%q does not unwrap to cause", tt.err.Error())
		}
	}
}

func TestNewStageError(t *testing.T) {
	if err := NewStageError(StageFont, nil); err != nil {
		t.Errorf("NewStageError(nil) = %v, want nil", err)
	}

	err := NewStageError(StageSave, ErrNilFrame)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("NewStageError() = %T, want *StageError", err)
	}
	if se.Stage != StageSave || se.Frame != -1 {
		t.Errorf("StageError = %+v", se)
	}
	if !errors.Is(err, ErrNilFrame) {
		t.Error("NewStageError() does not wrap cause")
	}
}
