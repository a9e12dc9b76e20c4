package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SteNicholas/hudi/internal/cliopt"
	"github.com/SteNicholas/hudi/schema"
)

func RunInit(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "initial schema json file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if schemaPath == "" {
		fmt.Fprintln(os.Stderr, "missing --schema")
		return 2
	}

	b, err := os.ReadFile(schemaPath)
	if err != nil {
		return fail(err)
	}
	initial, err := schema.FromJSON(b)
	if err != nil {
		return fail(err)
	}

	ctx := context.Background()
	cat, err := openCatalog(ctx, g)
	if err != nil {
		return fail(err)
	}
	defer cat.Close()

	version, err := cat.Init(ctx, initial)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stdout, "initialized catalog at schema version %d (%d columns, max column id %d)\n",
		version, len(initial.Fields()), initial.MaxColumnID())
	return 0
}
