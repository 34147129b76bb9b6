package brainfuck

// OptimizationConfig toggles individual rewrite passes. The zero value
// disables everything; DefaultOptimizationConfig turns everything on.
// Later passes assume the normalization of earlier ones, so the pipeline
// order in Passes is fixed even when some passes are switched off.
type OptimizationConfig struct {
	CollapsedOperators   bool `toml:"collapsed_operators"`
	CollapsedAssignments bool `toml:"collapsed_assignments"`
	CollapsedOffsets     bool `toml:"collapsed_offsets"`
	CollapsedLoops       bool `toml:"collapsed_loops"`
	CollapsedScanLoops   bool `toml:"collapsed_scan_loops"`
}

func DefaultOptimizationConfig() *OptimizationConfig {
	return &OptimizationConfig{
		CollapsedOperators:   true,
		CollapsedAssignments: true,
		CollapsedOffsets:     true,
		CollapsedLoops:       true,
		CollapsedScanLoops:   true,
	}
}

// Pass rewrites one IR into an equivalent IR. A pass never fails: where its
// pattern is absent it leaves nodes unchanged. Passes recurse into loop
// bodies depth-first and must not mutate the input slice's nodes in place
// beyond what they own.
type Pass interface {
	Apply(code []Node) []Node
}

// Passes assembles the pipeline for a config. CollapsedLoops reruns offset
// collapsing and movement deferral after loop replacement, because splicing
// a loop body into its parent block exposes new fusion opportunities.
func Passes(config *OptimizationConfig) []Pass {
	passes := []Pass{}
	if config.CollapsedOperators {
		passes = append(passes, MergeRepeatedOperators{})
	}
	if config.CollapsedAssignments {
		passes = append(passes, CollapseAssignments{})
	}
	if config.CollapsedOffsets {
		passes = append(passes, CollapseOffsets{})
	}
	if config.CollapsedLoops {
		passes = append(passes, DeferMovements{}, CollapseMulLoops{})
		if config.CollapsedOffsets {
			passes = append(passes, CollapseOffsets{})
		}
		passes = append(passes, DeferMovements{})
	}
	if config.CollapsedOperators {
		passes = append(passes, CollapseSimpleMoves{})
	}
	if config.CollapsedScanLoops {
		passes = append(passes, CollapseScanLoops{})
	}
	return passes
}

// Optimize runs the full pipeline over code.
func Optimize(code []Node, config *OptimizationConfig) []Node {
	for _, pass := range Passes(config) {
		code = pass.Apply(code)
	}
	return code
}

// MergeRepeatedOperators coalesces adjacent adds at the same offset and
// adjacent moves. Runs of `++++` become one add(4); `><<` becomes move(-1).
// Merged nodes whose net effect is zero are dropped entirely.
type MergeRepeatedOperators struct{}

func (p MergeRepeatedOperators) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind == NODE_LOOP {
			node.Body = p.Apply(node.Body)
			out = append(out, node)
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if node.Kind == NODE_ADD && last.Kind == NODE_ADD && last.Offset == node.Offset {
				last.Value += node.Value
				if last.Value == 0 {
					out = out[:n-1]
				}
				continue
			}
			if node.Kind == NODE_MOVE && last.Kind == NODE_MOVE {
				last.Delta += node.Delta
				if last.Delta == 0 {
					out = out[:n-1]
				}
				continue
			}
		}
		out = append(out, node)
	}
	return out
}

// CollapseAssignments rewrites `[-]` and `[+]` into set(0). A loop whose
// whole body is a single unit add always drives the cell to zero, because a
// wrapping ±1 walk visits every residue. Larger deltas are deliberately left
// alone: an even delta on an odd cell never reaches zero, and proving
// termination for the rest means reasoning about gcd with the cell modulus.
// A set(v) followed by an add at the same offset then folds into one set.
type CollapseAssignments struct{}

func (p CollapseAssignments) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind == NODE_LOOP {
			if isUnitCounterLoop(node.Body) {
				node = Set(0, 0)
			} else {
				node.Body = p.Apply(node.Body)
			}
		}
		if n := len(out); n > 0 && node.Kind == NODE_ADD {
			last := &out[n-1]
			if last.Kind == NODE_SET && last.Offset == node.Offset {
				last.Value += node.Value
				continue
			}
		}
		out = append(out, node)
	}
	return out
}

func isUnitCounterLoop(body []Node) bool {
	if len(body) != 1 {
		return false
	}
	b := body[0]
	return b.Kind == NODE_ADD && b.Offset == 0 && (b.Value == 1 || b.Value == 255)
}

// CollapseOffsets folds pointer movement into the offset fields of the
// nodes that follow it. A move bubbles right across every cell-addressing
// node (shifting that node's offset), and adjacent moves merge as they
// meet, so `>+<` ends as a single add(1 @1) with no movement at all. Moves
// never cross a loop or scan boundary; loop entry is defined in terms of
// the actual pointer.
type CollapseOffsets struct{}

func (p CollapseOffsets) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind == NODE_LOOP {
			node.Body = p.Apply(node.Body)
		}
		switch node.Kind {
		case NODE_ADD, NODE_SET, NODE_OUTPUT, NODE_INPUT, NODE_MUL:
			if n := len(out); n > 0 && out[n-1].Kind == NODE_MOVE {
				move := out[n-1]
				node.Offset += move.Delta
				out[n-1] = node
				out = append(out, move)
				continue
			}
			out = append(out, node)
		case NODE_MOVE:
			if n := len(out); n > 0 && out[n-1].Kind == NODE_MOVE {
				out[n-1].Delta += node.Delta
				if out[n-1].Delta == 0 {
					out = out[:n-1]
				}
				continue
			}
			out = append(out, node)
		default:
			out = append(out, node)
		}
	}
	return out
}

// DeferMovements generalizes CollapseOffsets into a running accumulator per
// basic block: moves update a pending offset instead of being emitted, every
// other node is rewritten against the accumulated offset, and the residue is
// flushed as one move immediately before a loop, a scan, or the end of the
// block.
type DeferMovements struct{}

func (p DeferMovements) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	pending := 0
	flush := func() {
		if pending != 0 {
			out = append(out, Move(pending))
			pending = 0
		}
	}
	for _, node := range code {
		switch node.Kind {
		case NODE_MOVE:
			pending += node.Delta
		case NODE_ADD, NODE_SET, NODE_OUTPUT, NODE_INPUT, NODE_MUL:
			node.Offset += pending
			out = append(out, node)
		case NODE_LOOP:
			flush()
			node.Body = p.Apply(node.Body)
			out = append(out, node)
		case NODE_SCAN:
			flush()
			out = append(out, node)
		}
	}
	flush()
	return out
}

// CollapseSimpleMoves sums residual adjacent moves left at block boundaries
// by earlier passes. Idempotent with the move half of
// MergeRepeatedOperators, but runs after offset fusion.
type CollapseSimpleMoves struct{}

func (p CollapseSimpleMoves) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind == NODE_LOOP {
			node.Body = p.Apply(node.Body)
		}
		if node.Kind == NODE_MOVE {
			if node.Delta == 0 {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Kind == NODE_MOVE {
				out[n-1].Delta += node.Delta
				if out[n-1].Delta == 0 {
					out = out[:n-1]
				}
				continue
			}
		}
		out = append(out, node)
	}
	return out
}

// CollapseMulLoops replaces counted loops with multiplications. After
// movement deferral, a loop like `[->>+++<<]` is add nodes only, with no
// pointer motion and exactly one add(-1 @0) stepping the counter down. Such
// a loop runs once per count, so each add(v @k) contributes count*v to cell
// k: one mul node each, then set(0) for the spent counter. The replacement
// is unconditional because a zero counter multiplies everything by zero.
type CollapseMulLoops struct{}

func (p CollapseMulLoops) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind != NODE_LOOP {
			out = append(out, node)
			continue
		}
		if factors, ok := mulLoopFactors(node.Body); ok {
			out = append(out, factors...)
			out = append(out, Set(0, 0))
			continue
		}
		node.Body = p.Apply(node.Body)
		out = append(out, node)
	}
	return out
}

func mulLoopFactors(body []Node) ([]Node, bool) {
	if len(body) == 0 {
		return nil, false
	}
	var factors []Node
	counter := false
	for _, n := range body {
		if n.Kind != NODE_ADD {
			return nil, false
		}
		if n.Offset == 0 {
			// Only a single unit decrement makes the trip count equal the
			// starting cell value.
			if counter || n.Value != 255 {
				return nil, false
			}
			counter = true
			continue
		}
		factors = append(factors, Mul(0, n.Offset, n.Value))
	}
	if !counter {
		return nil, false
	}
	return factors, true
}

// CollapseScanLoops rewrites a loop whose entire body is one nonzero move
// into a scan node: advance by the step until a zero cell is found.
type CollapseScanLoops struct{}

func (p CollapseScanLoops) Apply(code []Node) []Node {
	out := make([]Node, 0, len(code))
	for _, node := range code {
		if node.Kind == NODE_LOOP {
			if len(node.Body) == 1 && node.Body[0].Kind == NODE_MOVE && node.Body[0].Delta != 0 {
				out = append(out, Scan(node.Body[0].Delta))
				continue
			}
			node.Body = p.Apply(node.Body)
		}
		out = append(out, node)
	}
	return out
}
