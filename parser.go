package brainfuck

import (
	"fmt"
)

// UnbalancedLoopError reports an unmatched bracket. Position is the byte
// offset of the offending symbol in the source: the stray OP_WHILE_END when
// Unexpected is true, the unclosed OP_WHILE otherwise.
type UnbalancedLoopError struct {
	Position   int
	Unexpected bool
}

func (e *UnbalancedLoopError) Error() string {
	if e.Unexpected {
		return fmt.Sprintf("Unbalanced loop: unexpected ']' at position [%d]", e.Position)
	}
	return fmt.Sprintf("Unbalanced loop: '[' at position [%d] is never closed", e.Position)
}

// Parse scans source text left to right and builds the parse tree. Loops
// nest via a stack of in-progress sequences. Non-instruction characters are
// comments and are dropped.
func Parse(src string) ([]ParseNode, error) {
	stack := [][]ParseNode{make([]ParseNode, 0, len(src))}
	opens := make([]int, 0, WHILE_STACK_CAP)

	for i := 0; i < len(src); i++ {
		switch OP(src[i]) {
		case OP_WHILE:
			stack = append(stack, nil)
			opens = append(opens, i)
		case OP_WHILE_END:
			if len(stack) < 2 {
				return nil, &UnbalancedLoopError{Position: i, Unexpected: true}
			}
			body := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opens = opens[:len(opens)-1]
			top := len(stack) - 1
			stack[top] = append(stack[top], ParseNode{Op: OP_WHILE, Body: body})
		case OP_POINTER_LEFT, OP_POINTER_RIGHT, OP_INC, OP_DEC, OP_OUTPUT, OP_INPUT:
			top := len(stack) - 1
			stack[top] = append(stack[top], ParseNode{Op: OP(src[i])})
		}
	}

	if len(stack) > 1 {
		return nil, &UnbalancedLoopError{Position: opens[len(opens)-1]}
	}

	return stack[0], nil
}
