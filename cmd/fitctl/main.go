package main

import (
	"fmt"
	"os"

	"alcyxob/fitlocal/internal/cli"
)

// Version is injected at build time via -ldflags="-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	if err := cli.Execute(os.Args[1:], os.Stdout, Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
