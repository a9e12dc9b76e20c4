package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SteNicholas/hudi/internal/cliopt"
	"github.com/SteNicholas/hudi/schema/changefile"
)

func RunApply(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var changesPath string
	var dryRun bool
	fs.StringVar(&changesPath, "changes", "", "yaml change file")
	fs.BoolVar(&dryRun, "dry-run", false, "print the resulting schema without saving")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if changesPath == "" {
		fmt.Fprintln(os.Stderr, "missing --changes")
		return 2
	}

	b, err := os.ReadFile(changesPath)
	if err != nil {
		return fail(err)
	}
	cs, err := changefile.Parse(b)
	if err != nil {
		return fail(err)
	}

	ctx := context.Background()
	cat, err := openCatalog(ctx, g)
	if err != nil {
		return fail(err)
	}
	defer cat.Close()

	base, err := cat.Latest(ctx)
	if err != nil {
		return fail(err)
	}
	next, err := cs.Apply(base)
	if err != nil {
		return fail(err)
	}

	if dryRun {
		fmt.Fprintf(os.Stdout, "dry run against version %d (max column id %d)\n",
			base.VersionID(), next.MaxColumnID())
		printFields(os.Stdout, next.Fields(), "  ")
		return 0
	}

	version, err := cat.Save(ctx, next)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stdout, "saved schema version %d (max column id %d)\n", version, next.MaxColumnID())
	return 0
}
