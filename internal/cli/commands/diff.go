package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/SteNicholas/hudi/internal/cliopt"
	"github.com/SteNicholas/hudi/schema"
)

func RunDiff(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var from, to int64
	fs.Int64Var(&from, "from", 0, "old schema version")
	fs.Int64Var(&to, "to", 0, "new schema version (0 = latest)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if from == 0 {
		fmt.Fprintln(os.Stderr, "missing --from")
		return 2
	}

	ctx := context.Background()
	cat, err := openCatalog(ctx, g)
	if err != nil {
		return fail(err)
	}
	defer cat.Close()

	old, err := cat.Get(ctx, from)
	if err != nil {
		return fail(err)
	}
	var next *schema.Schema
	if to == 0 {
		next, err = cat.Latest(ctx)
	} else {
		next, err = cat.Get(ctx, to)
	}
	if err != nil {
		return fail(err)
	}

	for _, line := range diffSchemas(old, next) {
		fmt.Fprintln(os.Stdout, line)
	}
	return 0
}

// diffSchemas compares column by stable ID, the identity that survives
// renames and reorders.
func diffSchemas(old, next *schema.Schema) []string {
	oldNames := namesByID(old)
	nextNames := namesByID(next)

	ids := make([]int, 0, len(oldNames)+len(nextNames))
	seen := make(map[int]bool)
	for id := range oldNames {
		ids = append(ids, id)
		seen[id] = true
	}
	for id := range nextNames {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var out []string
	for _, id := range ids {
		oldName, inOld := oldNames[id]
		nextName, inNext := nextNames[id]
		switch {
		case !inOld:
			f, _ := next.FindFieldByID(id)
			out = append(out, fmt.Sprintf("+ %s (id %d, %s)", nextName, id, f.Type))
		case !inNext:
			f, _ := old.FindFieldByID(id)
			out = append(out, fmt.Sprintf("- %s (id %d, %s)", oldName, id, f.Type))
		default:
			of, _ := old.FindFieldByID(id)
			nf, _ := next.FindFieldByID(id)
			if oldName != nextName {
				out = append(out, fmt.Sprintf("~ %s renamed to %s (id %d)", oldName, nextName, id))
			}
			if of.Type.String() != nf.Type.String() {
				out = append(out, fmt.Sprintf("~ %s type %s -> %s (id %d)", nextName, of.Type, nf.Type, id))
			}
			if of.Optional != nf.Optional {
				out = append(out, fmt.Sprintf("~ %s optional %t -> %t (id %d)", nextName, of.Optional, nf.Optional, id))
			}
			if of.Doc != nf.Doc {
				out = append(out, fmt.Sprintf("~ %s doc changed (id %d)", nextName, id))
			}
		}
	}
	if len(out) == 0 {
		out = append(out, "no changes")
	}
	return out
}

func namesByID(s *schema.Schema) map[int]string {
	out := make(map[int]string)
	for _, name := range s.AllColumnNames() {
		if id, ok := s.FindIDByName(name, true); ok {
			out[id] = name
		}
	}
	return out
}
