package brainfuck

import (
	"context"
	"fmt"
	"io"
)

// Interp executes source text one symbol at a time with no compilation
// beyond bracket matching: an instruction pointer walking the raw ops and a
// while-index stack for loops. It is the slowest possible way to run a
// program and exists as the reference the optimizing pipeline is checked
// against.
type Interp struct {
	Ops                []byte
	InstructionPointer int
	WhileIndexStack    []int
	Tape               *Tape
	Config             *MachineConfig
	In                 io.Reader
	Out                io.Writer
	InstructionCount   uint

	buf [1]byte
}

func NewInterp(source string, config *MachineConfig, in io.Reader, out io.Writer) *Interp {
	if config == nil {
		config = DefaultMachineConfig()
	}
	return &Interp{
		Ops:             []byte(source),
		WhileIndexStack: make([]int, 0, WHILE_STACK_CAP),
		Tape:            NewTape(config.TapeCellCount),
		Config:          config,
		In:              in,
		Out:             out,
	}
}

// Run steps through the ops until the end of the tape of instructions.
// Bracket mismatches surface as UnbalancedLoopError at the moment the
// offending symbol is reached.
func (ip *Interp) Run(ctx context.Context) error {
	for ip.InstructionPointer < len(ip.Ops) {
		if err := ip.step(ctx); err != nil {
			return err
		}
	}
	if len(ip.WhileIndexStack) > 0 {
		return &UnbalancedLoopError{Position: ip.WhileIndexStack[len(ip.WhileIndexStack)-1]}
	}
	return nil
}

func (ip *Interp) step(ctx context.Context) error {
	op := OP(ip.Ops[ip.InstructionPointer])
	if !IsOP(byte(op)) {
		// Comment character.
		ip.InstructionPointer++
		return nil
	}

	if err := ip.count(); err != nil {
		return err
	}

	switch op {
	case OP_INC:
		if err := ip.Tape.AddAt(0, 1); err != nil {
			return err
		}
	case OP_DEC:
		if err := ip.Tape.AddAt(0, 255); err != nil {
			return err
		}
	case OP_POINTER_LEFT:
		if err := ip.Tape.MoveBy(-1); err != nil {
			return err
		}
	case OP_POINTER_RIGHT:
		if err := ip.Tape.MoveBy(1); err != nil {
			return err
		}
	case OP_OUTPUT:
		v, err := ip.Tape.At(0)
		if err != nil {
			return err
		}
		if ip.Out != nil {
			ip.buf[0] = v
			if _, err := ip.Out.Write(ip.buf[:]); err != nil {
				return fmt.Errorf("failed to write output byte: %w", err)
			}
		}
	case OP_INPUT:
		var v byte
		if ip.In != nil {
			if _, err := io.ReadFull(ip.In, ip.buf[:]); err == nil {
				v = ip.buf[0]
			} else if err != io.EOF && err != io.ErrUnexpectedEOF {
				return fmt.Errorf("failed to read input byte: %w", err)
			}
		}
		if err := ip.Tape.SetAt(0, v); err != nil {
			return err
		}
	case OP_WHILE:
		v, err := ip.Tape.At(0)
		if err != nil {
			return err
		}
		if v == 0 {
			return ip.advanceToWhileEnd()
		}
		ip.WhileIndexStack = append(ip.WhileIndexStack, ip.InstructionPointer)
	case OP_WHILE_END:
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(ip.WhileIndexStack) == 0 {
			return &UnbalancedLoopError{Position: ip.InstructionPointer, Unexpected: true}
		}
		v, err := ip.Tape.At(0)
		if err != nil {
			return err
		}
		if v != 0 {
			// Jump past the matching OP_WHILE; it stays on the stack.
			ip.InstructionPointer = ip.WhileIndexStack[len(ip.WhileIndexStack)-1] + 1
			return nil
		}
		ip.WhileIndexStack = ip.WhileIndexStack[:len(ip.WhileIndexStack)-1]
	}

	ip.InstructionPointer++
	return nil
}

// advanceToWhileEnd skips a loop whose condition is already zero, landing
// one past the matching OP_WHILE_END. Nested loops are counted, comments
// ignored.
func (ip *Interp) advanceToWhileEnd() error {
	depth := 0
	for i := ip.InstructionPointer + 1; i < len(ip.Ops); i++ {
		switch OP(ip.Ops[i]) {
		case OP_WHILE:
			depth++
		case OP_WHILE_END:
			if depth == 0 {
				ip.InstructionPointer = i + 1
				return nil
			}
			depth--
		}
	}
	return &UnbalancedLoopError{Position: ip.InstructionPointer}
}

func (ip *Interp) count() error {
	ip.InstructionCount++
	if limit := ip.Config.ExecutionLimit; limit != 0 && ip.InstructionCount > limit {
		return ErrExecutionLimitReached
	}
	return nil
}
