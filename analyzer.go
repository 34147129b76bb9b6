package brainfuck

import (
	"fmt"
	"sort"
	"strings"
)

// AnalysisResults is a census of an IR: how many nodes total and how many
// of each kind, nested loop bodies included. Comparing the census before
// and after optimization is the quickest way to see what the pipeline did
// to a program.
type AnalysisResults struct {
	Total uint
	Nodes map[NodeKind]uint
}

func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{Nodes: make(map[NodeKind]uint)}
}

func (r *AnalysisResults) Merge(nested *AnalysisResults) {
	r.Total += nested.Total
	for k, v := range nested.Nodes {
		r.Nodes[k] += v
	}
}

func (r *AnalysisResults) String() string {
	kinds := make([]NodeKind, 0, len(r.Nodes))
	for k := range r.Nodes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d nodes", r.Total)
	for _, k := range kinds {
		fmt.Fprintf(&sb, ", %s=%d", k, r.Nodes[k])
	}
	return sb.String()
}

// Analyze counts nodes by kind. A loop counts itself and everything in its
// body.
func Analyze(code []Node) *AnalysisResults {
	results := NewAnalysisResults()
	for i := range code {
		results.Total++
		results.Nodes[code[i].Kind]++
		if code[i].Kind == NODE_LOOP {
			results.Merge(Analyze(code[i].Body))
		}
	}
	return results
}
