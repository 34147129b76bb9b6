package brainfuck

import (
	"context"
	"fmt"
	"io"
)

var ErrExecutionLimitReached error = fmt.Errorf("Instruction execution count limit reached")

type MachineConfig struct {
	// ExecutionLimit aborts a run after this many executed nodes (loop
	// re-checks and scan steps count). 0 means unlimited.
	ExecutionLimit uint `toml:"execution_limit"`
	TapeCellCount  uint `toml:"tape_cell_count"`
}

func DefaultMachineConfig() *MachineConfig {
	return &MachineConfig{TapeCellCount: DEFAULT_CELL_COUNT}
}

// Machine executes compiled programs against a tape. The tape survives
// LoadProgram, so a REPL can feed successive programs into one memory
// image; Reset clears it. In may be nil, which reads as immediate
// end-of-input; Out may be nil to discard output.
type Machine struct {
	Tape             *Tape
	Config           *MachineConfig
	Program          *Program
	In               io.Reader
	Out              io.Writer
	InstructionCount uint

	inBuf  [1]byte
	outBuf [1]byte
}

func NewMachine(config *MachineConfig, in io.Reader, out io.Writer) *Machine {
	if config == nil {
		config = DefaultMachineConfig()
	}
	return &Machine{
		Tape:   NewTape(config.TapeCellCount),
		Config: config,
		In:     in,
		Out:    out,
	}
}

func (m *Machine) LoadProgram(p *Program) {
	m.Program = p
}

func (m *Machine) Reset() {
	m.Tape.Reset()
	m.InstructionCount = 0
}

// Run executes the loaded program to completion. ctx is the cancellation
// hook: it is polled once per loop iteration and per scan step, never
// between the sub-steps of a node, so an aborted run leaves the tape in a
// consistent state the caller can inspect.
func (m *Machine) Run(ctx context.Context) error {
	if m.Program == nil {
		return fmt.Errorf("no program loaded")
	}
	m.InstructionCount = 0
	return m.runBlock(ctx, m.Program.Code)
}

func (m *Machine) runBlock(ctx context.Context, code []Node) error {
	for i := range code {
		if err := m.exec(ctx, &code[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) exec(ctx context.Context, n *Node) error {
	if err := m.count(); err != nil {
		return err
	}

	switch n.Kind {
	case NODE_ADD:
		return m.Tape.AddAt(n.Offset, n.Value)
	case NODE_SET:
		return m.Tape.SetAt(n.Offset, n.Value)
	case NODE_MOVE:
		return m.Tape.MoveBy(n.Delta)
	case NODE_MUL:
		v, err := m.Tape.At(n.Offset)
		if err != nil {
			return err
		}
		if v == 0 {
			// The loop this node replaced runs zero iterations, so the
			// target cell must not be touched; it may not even be
			// addressable.
			return nil
		}
		return m.Tape.AddAt(n.Offset+n.Into, v*n.Value)
	case NODE_OUTPUT:
		v, err := m.Tape.At(n.Offset)
		if err != nil {
			return err
		}
		return m.write(v)
	case NODE_INPUT:
		v, err := m.read()
		if err != nil {
			return err
		}
		return m.Tape.SetAt(n.Offset, v)
	case NODE_LOOP:
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := m.Tape.At(0)
			if err != nil {
				return err
			}
			if v == 0 {
				return nil
			}
			if err := m.runBlock(ctx, n.Body); err != nil {
				return err
			}
			if err := m.count(); err != nil {
				return err
			}
		}
	case NODE_SCAN:
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := m.Tape.At(0)
			if err != nil {
				return err
			}
			if v == 0 {
				return nil
			}
			if err := m.Tape.MoveBy(n.Delta); err != nil {
				return err
			}
			if err := m.count(); err != nil {
				return err
			}
		}
	default:
		panic(fmt.Sprintf("Unknown node kind [%d] encountered!", n.Kind))
	}
}

func (m *Machine) count() error {
	m.InstructionCount++
	if limit := m.Config.ExecutionLimit; limit != 0 && m.InstructionCount > limit {
		return ErrExecutionLimitReached
	}
	return nil
}

func (m *Machine) write(v byte) error {
	if m.Out == nil {
		return nil
	}
	m.outBuf[0] = v
	if _, err := m.Out.Write(m.outBuf[:]); err != nil {
		return fmt.Errorf("failed to write output byte: %w", err)
	}
	return nil
}

// read consumes one input byte. End-of-input is not an error: the defined
// behavior is to hand back a zero byte.
func (m *Machine) read() (byte, error) {
	if m.In == nil {
		return 0, nil
	}
	if _, err := io.ReadFull(m.In, m.inBuf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read input byte: %w", err)
	}
	return m.inBuf[0], nil
}
