package brainfuck

import (
	"fmt"
	"strings"
)

// ErrPointerUnderflow is returned when the pointer, or a cell access through
// a negative offset, would land below cell zero. The policy is strict abort
// rather than clamping, applied uniformly to moves, scans, and offsets.
var ErrPointerUnderflow = fmt.Errorf("pointer moved below the lowest addressable cell")

// Tape is the machine's memory: wrapping byte cells indexed by a
// non-negative pointer. It grows to the right automatically on access; the
// left edge is hard.
type Tape struct {
	Cells   []byte
	Pointer int
}

func NewTape(cellCount uint) *Tape {
	if cellCount == 0 {
		cellCount = DEFAULT_CELL_COUNT
	}
	return &Tape{Cells: make([]byte, cellCount)}
}

func (t *Tape) Reset() {
	for i := range t.Cells {
		t.Cells[i] = 0
	}
	t.Pointer = 0
}

// cell resolves pointer+offset to an absolute index, growing as needed.
func (t *Tape) cell(offset int) (int, error) {
	i := t.Pointer + offset
	if i < 0 {
		return 0, ErrPointerUnderflow
	}
	t.grow(i)
	return i, nil
}

func (t *Tape) grow(index int) {
	if index < len(t.Cells) {
		return
	}
	size := len(t.Cells) * 2
	if size <= index {
		size = index + 1
	}
	cells := make([]byte, size)
	copy(cells, t.Cells)
	t.Cells = cells
}

func (t *Tape) At(offset int) (byte, error) {
	i, err := t.cell(offset)
	if err != nil {
		return 0, err
	}
	return t.Cells[i], nil
}

func (t *Tape) AddAt(offset int, delta byte) error {
	i, err := t.cell(offset)
	if err != nil {
		return err
	}
	t.Cells[i] += delta
	return nil
}

func (t *Tape) SetAt(offset int, value byte) error {
	i, err := t.cell(offset)
	if err != nil {
		return err
	}
	t.Cells[i] = value
	return nil
}

func (t *Tape) MoveBy(delta int) error {
	next := t.Pointer + delta
	if next < 0 {
		return ErrPointerUnderflow
	}
	t.grow(next)
	t.Pointer = next
	return nil
}

// Window renders cells centered on the pointer as an index row, a value row,
// and a pointer marker. The REPL prints this between lines.
func (t *Tape) Window(cellCount int) string {
	if cellCount <= 0 {
		cellCount = DEFAULT_WINDOW_CELLS
	}
	start := t.Pointer - cellCount/2
	if start < 0 {
		start = 0
	}
	end := start + cellCount
	if end > len(t.Cells) {
		end = len(t.Cells)
	}

	var indexes, values, marks strings.Builder
	indexes.WriteByte('|')
	values.WriteByte('|')
	marks.WriteByte('|')
	for i := start; i < end; i++ {
		fmt.Fprintf(&indexes, "%6d|", i)
		fmt.Fprintf(&values, "%6d|", t.Cells[i])
		if i == t.Pointer {
			marks.WriteString("******|")
		} else {
			marks.WriteString("      |")
		}
	}
	return indexes.String() + "\n" + values.String() + "\n" + marks.String()
}
