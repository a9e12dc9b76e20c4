package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SteNicholas/hudi/internal/cliopt"
)

func RunHistory(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := context.Background()
	cat, err := openCatalog(ctx, g)
	if err != nil {
		return fail(err)
	}
	defer cat.Close()

	entries, err := cat.History(ctx)
	if err != nil {
		return fail(err)
	}

	if g.Format == "json" {
		type row struct {
			Version   int64  `json:"version"`
			CreatedAt string `json:"created_at"`
			Checksum  string `json:"checksum"`
		}
		rows := make([]row, len(entries))
		for i, e := range entries {
			rows[i] = row{
				Version:   e.Version,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
				Checksum:  fmt.Sprintf("%016x", e.Checksum),
			}
		}
		out, _ := json.Marshal(rows)
		fmt.Fprintln(os.Stdout, string(out))
		return 0
	}

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "version %d  %s  checksum %016x\n",
			e.Version, e.CreatedAt.Format(time.RFC3339), e.Checksum)
	}
	return 0
}
