// main is the entry point for the motifscan CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/movelab/motifscan/cmd"
)

func main() {
	err := cmd.Execute()

	// Always stop profiling before exit, even on command failure.
	if perr := cmd.StopProfiling(); perr != nil {
		color.Yellow("Warning: %v", perr)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
