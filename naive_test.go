package brainfuck

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runInterp(t *testing.T, src, input string) (*Interp, string) {
	t.Helper()
	var out bytes.Buffer
	interp := NewInterp(src, &MachineConfig{TapeCellCount: 64}, strings.NewReader(input), &out)
	if err := interp.Run(context.Background()); err != nil {
		t.Fatalf("Unexpected run failure for %q: %v", src, err)
	}
	return interp, out.String()
}

func TestInterpHelloWorld(t *testing.T) {
	_, out := runInterp(t, helloWorld, "")
	if out != "Hello World!\n" {
		t.Errorf("Got %q, expected %q", out, "Hello World!\n")
	}
}

func TestInterpEcho(t *testing.T) {
	_, out := runInterp(t, ",[.,]", "hi")
	if out != "hi" {
		t.Errorf("Got %q, expected %q", out, "hi")
	}
}

func TestInterpSkipsComments(t *testing.T) {
	interp, _ := runInterp(t, "one + and two more ++ (three total)", "")
	if v, _ := interp.Tape.At(0); v != 3 {
		t.Errorf("Cell holds [%d], expected 3", v)
	}
}

func TestInterpSkipsZeroLoop(t *testing.T) {
	interp, out := runInterp(t, "[+.[-].]++", "")
	if out != "" {
		t.Errorf("Skipped loop produced output %q", out)
	}
	if v, _ := interp.Tape.At(0); v != 2 {
		t.Errorf("Cell holds [%d], expected 2", v)
	}
}

func TestInterpUnexpectedClose(t *testing.T) {
	interp := NewInterp("+]", nil, nil, nil)
	err := interp.Run(context.Background())
	perr, ok := err.(*UnbalancedLoopError)
	if !ok {
		t.Fatalf("Expected UnbalancedLoopError, got %v", err)
	}
	if !perr.Unexpected || perr.Position != 1 {
		t.Errorf("Wrong error detail: %+v", perr)
	}
}

func TestInterpUnclosedOpen(t *testing.T) {
	interp := NewInterp("+[-", nil, nil, nil)
	err := interp.Run(context.Background())
	if _, ok := err.(*UnbalancedLoopError); !ok {
		t.Fatalf("Expected UnbalancedLoopError, got %v", err)
	}
}

func TestInterpPointerUnderflow(t *testing.T) {
	interp := NewInterp("<", nil, nil, nil)
	if err := interp.Run(context.Background()); err != ErrPointerUnderflow {
		t.Errorf("Got %v, expected pointer underflow", err)
	}
}

func TestInterpExecutionLimit(t *testing.T) {
	interp := NewInterp("+[]", &MachineConfig{TapeCellCount: 8, ExecutionLimit: 100}, nil, nil)
	if err := interp.Run(context.Background()); err != ErrExecutionLimitReached {
		t.Errorf("Got %v, expected execution limit", err)
	}
}

func TestInterpCancellation(t *testing.T) {
	interp := NewInterp("+[]", &MachineConfig{TapeCellCount: 8}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := interp.Run(ctx); err != context.Canceled {
		t.Errorf("Got %v, expected context.Canceled", err)
	}
}
