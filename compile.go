package brainfuck

import (
	cp "github.com/jinzhu/copier"
)

// Program is a compiled unit of execution: the canonical source text and
// the IR the machine walks. Once compiled it is never rewritten; clone it
// before handing it to anything that wants its own copy.
type Program struct {
	Source string
	Code   []Node
}

// Compile parses, lowers, and optimizes source text in one shot. A nil
// config compiles with every optimization enabled. Parse errors surface
// here; optimization itself cannot fail.
func Compile(source string, config *OptimizationConfig) (*Program, error) {
	parsed, err := Parse(source)
	if err != nil {
		return nil, err
	}
	code := Lower(parsed)
	if config == nil {
		config = DefaultOptimizationConfig()
	}
	return &Program{
		Source: ProgramText(parsed),
		Code:   Optimize(code, config),
	}, nil
}

func (p *Program) Clone() *Program {
	clone := &Program{}
	cp.CopyWithOption(clone, p, cp.Option{DeepCopy: true})
	return clone
}
