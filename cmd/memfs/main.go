package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"memfs/internal/cli"
)

func main() {
	// Recover from panics so contract violations exit with a stack trace
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(3)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
