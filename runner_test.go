package brainfuck

import (
	"bytes"
	"context"
	"testing"
)

func TestRunSourceReport(t *testing.T) {
	var out bytes.Buffer
	report, program, err := RunSource(context.Background(), "+++.", &MachineConfig{TapeCellCount: 16}, nil, nil, &out)
	if err != nil {
		t.Fatalf("Unexpected run failure: %v", err)
	}

	if out.String() != "\x03" {
		t.Errorf("Got output %q, expected %q", out.String(), "\x03")
	}
	if report.NodesLowered != 4 {
		t.Errorf("NodesLowered is [%d], expected 4", report.NodesLowered)
	}
	if report.NodesOptimized != 2 {
		t.Errorf("NodesOptimized is [%d], expected 2", report.NodesOptimized)
	}
	if report.NodesExecuted != 2 {
		t.Errorf("NodesExecuted is [%d], expected 2", report.NodesExecuted)
	}
	if report.OutputBytes != 1 {
		t.Errorf("OutputBytes is [%d], expected 1", report.OutputBytes)
	}
	if report.MachineError != nil {
		t.Errorf("Unexpected machine error %q", *report.MachineError)
	}
	if program.Source != "+++." {
		t.Errorf("Canonical source is %q", program.Source)
	}
}

func TestRunSourceMachineErrorIsNotFatal(t *testing.T) {
	report, _, err := RunSource(context.Background(), "<", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Machine failure must not fail the call: %v", err)
	}
	if report.MachineError == nil {
		t.Fatalf("Underflow didn't land in the report")
	}
	if *report.MachineError != ErrPointerUnderflow.Error() {
		t.Errorf("Got error %q", *report.MachineError)
	}
}

func TestRunSourceParseErrorIsFatal(t *testing.T) {
	_, _, err := RunSource(context.Background(), "[", nil, nil, nil, nil)
	if _, ok := err.(*UnbalancedLoopError); !ok {
		t.Errorf("Expected UnbalancedLoopError, got %v", err)
	}
}

func TestRunSourceCountsDiscardedOutput(t *testing.T) {
	report, _, err := RunSource(context.Background(), "+..", nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected run failure: %v", err)
	}
	if report.OutputBytes != 2 {
		t.Errorf("OutputBytes is [%d], expected 2", report.OutputBytes)
	}
}
