package brainfuck

import (
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

// RunMetrics aggregates the run history: how many runs, how hard the
// optimizer squeezed on average (optimized/lowered node ratio, lower is
// better), and the best squeeze seen.
type RunMetrics struct {
	RunCount           uint
	FailedRuns         uint
	AvgShrink          float64
	BestShrink         float64
	TotalNodesExecuted uint64
}

// QueryRunMetrics reads aggregates straight from the run_records table with
// the raw driver; gorm stays out of the hot query path.
func QueryRunMetrics(dbPath string) (*RunMetrics, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to open database [%s]: %w", dbPath, err)
	}
	defer db.Close()

	row := db.QueryRow(`SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN machine_error IS NOT NULL THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(CAST(nodes_optimized AS REAL) / nodes_lowered), 0),
		COALESCE(MIN(CAST(nodes_optimized AS REAL) / nodes_lowered), 0),
		COALESCE(SUM(nodes_executed), 0)
		FROM run_records
		WHERE nodes_lowered > 0`)

	m := &RunMetrics{}
	var count, failed int64
	var executed int64
	if err := row.Scan(&count, &failed, &m.AvgShrink, &m.BestShrink, &executed); err != nil {
		return nil, fmt.Errorf("Failed to scan run metrics: %w", err)
	}
	m.RunCount = uint(count)
	m.FailedRuns = uint(failed)
	m.TotalNodesExecuted = uint64(executed)
	return m, nil
}
