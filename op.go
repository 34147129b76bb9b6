package brainfuck

import (
	"strings"
)

// The eight OPs for Brainfuck. Anything else in a source program is a
// comment and gets skipped by the parser.

type OP byte

const (
	OP_POINTER_LEFT  = OP('<')
	OP_POINTER_RIGHT = OP('>')
	OP_INC           = OP('+')
	OP_DEC           = OP('-')
	OP_WHILE         = OP('[')
	OP_WHILE_END     = OP(']')
	OP_OUTPUT        = OP('.')
	OP_INPUT         = OP(',')
)

var OP_SET [8]OP = [...]OP{
	OP_POINTER_LEFT,
	OP_POINTER_RIGHT,
	OP_INC,
	OP_DEC,
	OP_WHILE,
	OP_WHILE_END,
	OP_OUTPUT,
	OP_INPUT,
}

// IsOP reports whether b is one of the eight instruction symbols.
func IsOP(b byte) bool {
	switch OP(b) {
	case OP_POINTER_LEFT, OP_POINTER_RIGHT, OP_INC, OP_DEC,
		OP_WHILE, OP_WHILE_END, OP_OUTPUT, OP_INPUT:
		return true
	}
	return false
}

// ParseNode is one instruction in the parse tree. Leaf nodes carry only
// their OP. A node with Op == OP_WHILE is a matched loop and carries its
// body, which may be empty.
type ParseNode struct {
	Op   OP
	Body []ParseNode
}

// ProgramText serializes a parse tree back to canonical instruction
// characters. Characters the parser skipped are gone; parsing the result
// again yields an equal tree.
func ProgramText(nodes []ParseNode) string {
	var sb strings.Builder
	writeProgramText(&sb, nodes)
	return sb.String()
}

func writeProgramText(sb *strings.Builder, nodes []ParseNode) {
	for _, n := range nodes {
		if n.Op == OP_WHILE {
			sb.WriteByte(byte(OP_WHILE))
			writeProgramText(sb, n.Body)
			sb.WriteByte(byte(OP_WHILE_END))
			continue
		}
		sb.WriteByte(byte(n.Op))
	}
}
