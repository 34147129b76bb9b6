package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"

	brainfuck "nickandperla.net/brainfuck"
)

var (
	configPath  = flag.String("config", "./config.toml", "Tool config path")
	unoptimized = flag.Bool("unoptimized", false, "Run the lowered IR with every optimization pass disabled")
	naive       = flag.Bool("naive", false, "Skip compilation entirely and step the raw source symbols")
	record      = flag.Bool("record", false, "Record the run in the configured history database")
	profiling   = flag.Bool("profile", false, "Write a CPU profile for the run")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [flags] <program.bf>", os.Args[0])
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Unable to read program: %v", err)
	}

	config := loadConfig(*configPath)

	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *naive {
		interp := brainfuck.NewInterp(string(source), config.Machine, os.Stdin, out)
		if err := interp.Run(ctx); err != nil {
			out.Flush()
			log.Fatalf("Run failed: %v", err)
		}
		return
	}

	oc := config.Optimization
	if *unoptimized {
		oc = &brainfuck.OptimizationConfig{}
	}

	report, program, err := brainfuck.RunSource(ctx, string(source), config.Machine, oc, os.Stdin, out)
	if err != nil {
		log.Fatalf("Compilation failed: %v", err)
	}
	out.Flush()

	log.Printf("nodes: lowered=%d optimized=%d executed=%d output_bytes=%d tape_cells=%d",
		report.NodesLowered, report.NodesOptimized, report.NodesExecuted,
		report.OutputBytes, report.TapeCells)

	if *record {
		recordRun(config, program, report)
	}

	if report.MachineError != nil {
		log.Fatalf("Run failed: %s", *report.MachineError)
	}
}

func loadConfig(path string) *brainfuck.ToolConfig {
	config, err := brainfuck.LoadToolConfig(path)
	if err != nil {
		if path != "./config.toml" {
			log.Fatalf("%v", err)
		}
		return brainfuck.DefaultToolConfig()
	}
	return config
}

func recordRun(config *brainfuck.ToolConfig, program *brainfuck.Program, report *brainfuck.RunReport) {
	if config.Persistence == nil {
		log.Printf("No persistence section in config, skipping -record")
		return
	}
	persist, err := brainfuck.NewPersistence(config.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if _, err := persist.RecordRun(program, report); err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}
}
