package brainfuck

import (
	"strings"
	"testing"
)

func TestAnalyzeFlat(t *testing.T) {
	results := Analyze([]Node{Add(0, 3), Move(1), Output(0)})
	if results.Total != 3 {
		t.Errorf("Total is [%d], expected 3", results.Total)
	}
	if results.Nodes[NODE_ADD] != 1 || results.Nodes[NODE_MOVE] != 1 || results.Nodes[NODE_OUTPUT] != 1 {
		t.Errorf("Wrong census: %v", results.Nodes)
	}
}

func TestAnalyzeCountsLoopBodies(t *testing.T) {
	code := mustLower(t, "+[>[-]<]")
	results := Analyze(code)
	if results.Total != 6 {
		t.Errorf("Total is [%d], expected 6", results.Total)
	}
	if results.Nodes[NODE_LOOP] != 2 {
		t.Errorf("Loop count is [%d], expected 2", results.Nodes[NODE_LOOP])
	}
	if results.Nodes[NODE_ADD] != 2 {
		t.Errorf("Add count is [%d], expected 2", results.Nodes[NODE_ADD])
	}
	if results.Nodes[NODE_MOVE] != 2 {
		t.Errorf("Move count is [%d], expected 2", results.Nodes[NODE_MOVE])
	}
}

func TestAnalyzeString(t *testing.T) {
	results := Analyze([]Node{Add(0, 1), Add(1, 2), Move(3)})
	s := results.String()
	if !strings.HasPrefix(s, "3 nodes") {
		t.Errorf("Unexpected census text %q", s)
	}
	if !strings.Contains(s, "add=2") || !strings.Contains(s, "move=1") {
		t.Errorf("Unexpected census text %q", s)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	results := Analyze(nil)
	if results.Total != 0 || len(results.Nodes) != 0 {
		t.Errorf("Empty census isn't empty: %v", results)
	}
}
