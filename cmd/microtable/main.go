package main

import (
	"fmt"
	"os"

	"github.com/bjaus/microtable/internal/cli"
)

func main() {
	if err := cli.NewCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
