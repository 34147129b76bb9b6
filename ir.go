package brainfuck

import (
	"fmt"
	"strings"
)

// NodeKind tags the instruction variants the optimizer and the machine work
// with. Every cell-addressing node carries an Offset relative to the current
// pointer; NODE_MOVE is the only node that changes the pointer itself.
type NodeKind byte

const (
	NODE_ADD    NodeKind = iota // tape[p+Offset] += Value (wrapping)
	NODE_SET                    // tape[p+Offset] = Value
	NODE_MOVE                   // p += Delta
	NODE_OUTPUT                 // emit tape[p+Offset]
	NODE_INPUT                  // read one byte into tape[p+Offset]
	NODE_MUL                    // tape[p+Offset+Into] += tape[p+Offset] * Value (wrapping)
	NODE_LOOP                   // run Body while tape[p] != 0
	NODE_SCAN                   // p += Delta until tape[p] == 0
)

func (k NodeKind) String() string {
	switch k {
	case NODE_ADD:
		return "add"
	case NODE_SET:
		return "set"
	case NODE_MOVE:
		return "move"
	case NODE_OUTPUT:
		return "out"
	case NODE_INPUT:
		return "in"
	case NODE_MUL:
		return "mul"
	case NODE_LOOP:
		return "loop"
	case NODE_SCAN:
		return "scan"
	}
	return "unknown"
}

// Node is one intermediate instruction. Value is a wrapping byte quantity:
// an add of 255 is a subtract of one. Offsets never move the pointer; a
// pass that defers movement must flush a NODE_MOVE before any loop or scan
// boundary so the pointer is exact where loop conditions are evaluated.
type Node struct {
	Kind   NodeKind
	Offset int
	Delta  int
	Value  byte
	Into   int
	Body   []Node
}

func Add(offset int, value byte) Node { return Node{Kind: NODE_ADD, Offset: offset, Value: value} }
func Set(offset int, value byte) Node { return Node{Kind: NODE_SET, Offset: offset, Value: value} }
func Move(delta int) Node             { return Node{Kind: NODE_MOVE, Delta: delta} }
func Output(offset int) Node          { return Node{Kind: NODE_OUTPUT, Offset: offset} }
func Input(offset int) Node           { return Node{Kind: NODE_INPUT, Offset: offset} }
func Scan(delta int) Node             { return Node{Kind: NODE_SCAN, Delta: delta} }
func Loop(body ...Node) Node          { return Node{Kind: NODE_LOOP, Body: body} }

// Mul adds tape[p+offset] * factor into tape[p+offset+into].
func Mul(offset, into int, factor byte) Node {
	return Node{Kind: NODE_MUL, Offset: offset, Into: into, Value: factor}
}

func (n Node) String() string {
	switch n.Kind {
	case NODE_ADD:
		return fmt.Sprintf("add(%d @%d)", n.Value, n.Offset)
	case NODE_SET:
		return fmt.Sprintf("set(%d @%d)", n.Value, n.Offset)
	case NODE_MOVE:
		return fmt.Sprintf("move(%d)", n.Delta)
	case NODE_OUTPUT:
		return fmt.Sprintf("out(@%d)", n.Offset)
	case NODE_INPUT:
		return fmt.Sprintf("in(@%d)", n.Offset)
	case NODE_MUL:
		return fmt.Sprintf("mul(@%d+=@%d*%d)", n.Offset+n.Into, n.Offset, n.Value)
	case NODE_SCAN:
		return fmt.Sprintf("scan(%d)", n.Delta)
	case NODE_LOOP:
		parts := make([]string, len(n.Body))
		for i, b := range n.Body {
			parts[i] = b.String()
		}
		return fmt.Sprintf("loop[%s]", strings.Join(parts, " "))
	}
	return "unknown"
}

// Lower translates a parse tree into the initial IR. This is a direct
// structural translation with no fusion; the optimizer wants one uniform
// node shape to rewrite, nothing more.
func Lower(nodes []ParseNode) []Node {
	code := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Op {
		case OP_INC:
			code = append(code, Add(0, 1))
		case OP_DEC:
			code = append(code, Add(0, 255))
		case OP_POINTER_LEFT:
			code = append(code, Move(-1))
		case OP_POINTER_RIGHT:
			code = append(code, Move(1))
		case OP_OUTPUT:
			code = append(code, Output(0))
		case OP_INPUT:
			code = append(code, Input(0))
		case OP_WHILE:
			code = append(code, Node{Kind: NODE_LOOP, Body: Lower(n.Body)})
		}
	}
	return code
}

// NodeCount counts every node in code including those nested in loop bodies.
func NodeCount(code []Node) uint {
	var count uint
	for i := range code {
		count++
		if code[i].Kind == NODE_LOOP {
			count += NodeCount(code[i].Body)
		}
	}
	return count
}
