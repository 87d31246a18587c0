package main

import (
	"os"

	"github.com/mcncl/jsonkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
