package brainfuck

import (
	"strings"
	"testing"
)

func TestTapeWrapsBytes(t *testing.T) {
	tape := NewTape(8)

	if err := tape.SetAt(0, 255); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := tape.AddAt(0, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := tape.At(0); v != 0 {
		t.Errorf("255+1 should wrap to 0, got [%d]", v)
	}

	if err := tape.AddAt(1, 255); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := tape.At(1); v != 255 {
		t.Errorf("0-1 should wrap to 255, got [%d]", v)
	}
}

func TestTapeGrowsRight(t *testing.T) {
	tape := NewTape(4)

	if err := tape.MoveBy(10); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tape.Cells) < 11 {
		t.Errorf("Tape didn't grow, has [%d] cells", len(tape.Cells))
	}
	if v, _ := tape.At(0); v != 0 {
		t.Errorf("New cells must be zero, got [%d]", v)
	}

	// Offset access past the end grows too.
	if err := tape.SetAt(30, 7); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := tape.At(30); v != 7 {
		t.Errorf("Offset write got lost, cell holds [%d]", v)
	}
}

func TestTapeGrowPreservesCells(t *testing.T) {
	tape := NewTape(2)
	tape.SetAt(0, 11)
	tape.SetAt(1, 22)

	if err := tape.MoveBy(100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	tape.Pointer = 0
	if v, _ := tape.At(0); v != 11 {
		t.Errorf("Cell 0 lost on grow, holds [%d]", v)
	}
	if v, _ := tape.At(1); v != 22 {
		t.Errorf("Cell 1 lost on grow, holds [%d]", v)
	}
}

func TestTapeUnderflow(t *testing.T) {
	tape := NewTape(8)

	if err := tape.MoveBy(-1); err != ErrPointerUnderflow {
		t.Errorf("MoveBy(-1) from zero got %v, expected underflow", err)
	}
	if tape.Pointer != 0 {
		t.Errorf("Failed move changed the pointer to [%d]", tape.Pointer)
	}

	if err := tape.AddAt(-1, 1); err != ErrPointerUnderflow {
		t.Errorf("AddAt(-1) from zero got %v, expected underflow", err)
	}
	if _, err := tape.At(-1); err != ErrPointerUnderflow {
		t.Errorf("At(-1) from zero got %v, expected underflow", err)
	}

	// Negative offsets are fine when they stay addressable.
	tape.MoveBy(3)
	if err := tape.SetAt(-2, 9); err != nil {
		t.Errorf("In-range negative offset failed: %v", err)
	}
}

func TestTapeReset(t *testing.T) {
	tape := NewTape(8)
	tape.MoveBy(3)
	tape.SetAt(0, 42)

	tape.Reset()
	if tape.Pointer != 0 {
		t.Errorf("Pointer is [%d] after reset", tape.Pointer)
	}
	for i, v := range tape.Cells {
		if v != 0 {
			t.Errorf("Cell [%d] holds [%d] after reset", i, v)
		}
	}
}

func TestTapeWindow(t *testing.T) {
	tape := NewTape(8)
	tape.MoveBy(2)
	tape.SetAt(0, 42)

	window := tape.Window(5)
	lines := strings.Split(window, "\n")
	if len(lines) != 3 {
		t.Fatalf("Window has [%d] lines, expected 3", len(lines))
	}
	if !strings.Contains(lines[1], "42") {
		t.Errorf("Value row is missing the pointed cell: %q", lines[1])
	}
	if !strings.Contains(lines[2], "******") {
		t.Errorf("Marker row has no pointer mark: %q", lines[2])
	}
}
