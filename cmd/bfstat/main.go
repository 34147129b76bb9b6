package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	brainfuck "nickandperla.net/brainfuck"
)

var (
	configPath  = flag.String("config", "./config.toml", "Tool config path")
	programPath = flag.String("program", "", "Print before/after optimization node counts for a source file")
	history     = flag.Int("history", 0, "Print run metrics and list the N most recent recorded runs")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if *programPath == "" && *history == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *programPath != "" {
		analyzeProgram(*programPath)
	}

	if *history > 0 {
		queryHistory()
	}
}

func analyzeProgram(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Unable to read program: %v", err)
	}

	parsed, err := brainfuck.Parse(string(source))
	if err != nil {
		log.Fatalf("Parse failed: %v", err)
	}
	lowered := brainfuck.Lower(parsed)
	optimized := brainfuck.Optimize(lowered, brainfuck.DefaultOptimizationConfig())

	fmt.Printf("lowered:   %s\n", brainfuck.Analyze(lowered))
	fmt.Printf("optimized: %s\n", brainfuck.Analyze(optimized))
}

func queryHistory() {
	config, err := brainfuck.LoadToolConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if config.Persistence == nil {
		log.Fatalf("No persistence section in config [%s]", *configPath)
	}

	persist, err := brainfuck.NewPersistence(config.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	metrics, err := brainfuck.QueryRunMetrics(persist.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to query run metrics: %v", err)
	}

	fmt.Printf("runs=%d failed=%d avg_shrink=%.3f best_shrink=%.3f nodes_executed=%d\n",
		metrics.RunCount, metrics.FailedRuns, metrics.AvgShrink,
		metrics.BestShrink, metrics.TotalNodesExecuted)

	if *history > 0 {
		runs, err := persist.RecentRuns(*history)
		if err != nil {
			log.Fatalf("Failed to list recent runs: %v", err)
		}
		for _, run := range runs {
			status := "ok"
			if run.MachineError != nil {
				status = *run.MachineError
			}
			fmt.Printf("run %4d program=%d lowered=%d optimized=%d executed=%d output=%d [%s]\n",
				run.ID, run.ProgramRecordID, run.NodesLowered, run.NodesOptimized,
				run.NodesExecuted, run.OutputBytes, status)
		}
	}
}
