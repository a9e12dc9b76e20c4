package main

import (
	"os"

	"github.com/SteNicholas/hudi/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
