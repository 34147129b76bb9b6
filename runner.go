package brainfuck

import (
	"context"
	"io"
	"log"
)

// RunReport is the record of one execution: how big the program was going
// in, how much the optimizer shaved off, and what happened when it ran.
// A machine failure lands in MachineError rather than failing the run;
// compilation failures are real errors.
type RunReport struct {
	NodesLowered   uint
	NodesOptimized uint
	NodesExecuted  uint
	OutputBytes    uint
	TapeCells      uint
	MachineError   *string
}

type countingWriter struct {
	w     io.Writer
	count uint
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n := 0
	var err error
	if cw.w != nil {
		n, err = cw.w.Write(p)
	} else {
		n = len(p)
	}
	cw.count += uint(n)
	return n, err
}

// RunSource compiles and executes source text in one call, reporting what
// the optimizer and the machine did, along with the compiled program. The
// machine is fresh per call; REPLs that want a persistent tape drive a
// Machine directly.
func RunSource(ctx context.Context, source string, mc *MachineConfig, oc *OptimizationConfig, in io.Reader, out io.Writer) (*RunReport, *Program, error) {
	parsed, err := Parse(source)
	if err != nil {
		return nil, nil, err
	}
	lowered := Lower(parsed)
	if oc == nil {
		oc = DefaultOptimizationConfig()
	}
	program := &Program{Source: ProgramText(parsed), Code: Optimize(lowered, oc)}

	report := &RunReport{
		NodesLowered:   NodeCount(lowered),
		NodesOptimized: NodeCount(program.Code),
	}

	cw := &countingWriter{w: out}
	machine := NewMachine(mc, in, cw)
	machine.LoadProgram(program)

	if err := machine.Run(ctx); err != nil {
		if DEBUG {
			log.Printf("Machine run failed: %v", err)
		}
		msg := err.Error()
		report.MachineError = &msg
	}

	report.NodesExecuted = machine.InstructionCount
	report.OutputBytes = cw.count
	report.TapeCells = uint(len(machine.Tape.Cells))

	return report, program, nil
}
