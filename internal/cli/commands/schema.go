package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/SteNicholas/hudi/internal/cliopt"
	"github.com/SteNicholas/hudi/schema"
)

func RunSchema(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var version int64
	fs.Int64Var(&version, "version", 0, "schema version (0 = latest)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := context.Background()
	cat, err := openCatalog(ctx, g)
	if err != nil {
		return fail(err)
	}
	defer cat.Close()

	var s *schema.Schema
	if version == 0 {
		s, err = cat.Latest(ctx)
	} else {
		s, err = cat.Get(ctx, version)
	}
	if err != nil {
		return fail(err)
	}

	if g.Format == "json" {
		b, err := schema.ToJSON(s)
		if err != nil {
			return fail(err)
		}
		var pretty any
		if err := json.Unmarshal(b, &pretty); err == nil {
			if out, err := json.MarshalIndent(pretty, "", "  "); err == nil {
				fmt.Fprintln(os.Stdout, string(out))
				return 0
			}
		}
		fmt.Fprintln(os.Stdout, string(b))
		return 0
	}

	fmt.Fprintf(os.Stdout, "version %d (max column id %d)\n", s.VersionID(), s.MaxColumnID())
	printFields(os.Stdout, s.Fields(), "  ")
	return 0
}

func printFields(w *os.File, fields []schema.Field, indent string) {
	for _, f := range fields {
		fmt.Fprintf(w, "%s%s\n", indent, f)
		switch t := f.Type.(type) {
		case *schema.Record:
			printFields(w, t.Fields, indent+"  ")
		case *schema.Array:
			printFields(w, []schema.Field{t.Element}, indent+"  ")
		case *schema.Map:
			printFields(w, []schema.Field{t.Key, t.Value}, indent+"  ")
		}
	}
}
