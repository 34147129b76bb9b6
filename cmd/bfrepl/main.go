package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/xrash/smetrics"

	brainfuck "nickandperla.net/brainfuck"
)

const (
	historyFile = ".brainfuck_history"
	prompt      = "bf# "
)

var configPath = flag.String("config", "./config.toml", "Tool config path")

var replCommands = []string{":quit", ":reset", ":tape", ":stats", ":help"}

const helpText = `REPL commands:
  :quit    Exit the REPL
  :reset   Zero the tape and move the pointer home
  :tape    Print the tape around the pointer
  :stats   Print node counts for the last compiled program
  :help    This text

Anything else is compiled and run against the persistent tape.`

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	config, err := brainfuck.LoadToolConfig(*configPath)
	if err != nil {
		if *configPath != "./config.toml" {
			log.Fatalf("%v", err)
		}
		config = brainfuck.DefaultToolConfig()
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	machine := brainfuck.NewMachine(config.Machine, os.Stdin, os.Stdout)
	var lastProgram *brainfuck.Program

	fmt.Println("Brainfuck REPL. Ctrl+C aborts a running program, Ctrl+D exits. Type :help for commands.")

	for {
		fmt.Println(machine.Tape.Window(0))

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println("Exiting")
			return
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := handleCommand(machine, lastProgram, strings.TrimSpace(line)); quit {
				return
			}
			continue
		}

		program, err := brainfuck.Compile(line, config.Optimization)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		lastProgram = program

		machine.LoadProgram(program)
		if err := runInterruptible(machine); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Println()
	}
}

// runInterruptible runs the loaded program with Ctrl+C wired to the
// machine's cancellation hook, so an infinite loop hands the prompt back
// with the tape intact.
func runInterruptible(machine *brainfuck.Machine) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return machine.Run(ctx)
}

func handleCommand(machine *brainfuck.Machine, lastProgram *brainfuck.Program, command string) bool {
	switch command {
	case ":quit":
		return true
	case ":reset":
		machine.Reset()
	case ":tape":
		fmt.Println(machine.Tape.Window(0))
	case ":stats":
		if lastProgram == nil {
			fmt.Println("Nothing compiled yet")
			break
		}
		fmt.Println(brainfuck.Analyze(lastProgram.Code))
	case ":help":
		fmt.Println(helpText)
	default:
		if suggestion := nearestCommand(command); suggestion != "" {
			fmt.Printf("Unknown command %q. Did you mean %q?\n", command, suggestion)
		} else {
			fmt.Printf("Unknown command %q. Type :help for commands.\n", command)
		}
	}
	return false
}

// nearestCommand suggests a command within edit distance 2, enough to catch
// transpositions and a dropped letter without being eager.
func nearestCommand(input string) string {
	best := ""
	bestDistance := 3
	for _, cmd := range replCommands {
		d := smetrics.WagnerFischer(input, cmd, 1, 1, 2)
		if d < bestDistance {
			bestDistance = d
			best = cmd
		}
	}
	return best
}
