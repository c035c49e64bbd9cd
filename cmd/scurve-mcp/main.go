package main

import (
	"fmt"
	"os"

	"scurve-mcp/cmd/scurve-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
