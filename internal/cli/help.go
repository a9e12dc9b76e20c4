package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, "hudi-schema - versioned schema evolution for columnar tables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hudi-schema [global flags] <command> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init     --schema <schema.json>        create a catalog with an initial schema")
	fmt.Fprintln(w, "  schema   [--version N]                 print one schema version (default: latest)")
	fmt.Fprintln(w, "  apply    --changes <changes.yaml>      apply a change file and save a new version")
	fmt.Fprintln(w, "           [--dry-run]")
	fmt.Fprintln(w, "  history                                list stored schema versions")
	fmt.Fprintln(w, "  diff     --from N --to M               compare two schema versions column by column")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprintln(w, "  --backend sqlite|postgres   catalog backend (default: sqlite)")
	fmt.Fprintln(w, "  --sqlite-path <path>        sqlite catalog file (default: schema_catalog.db)")
	fmt.Fprintln(w, "  --pg-dsn <dsn>              postgres connection string")
	fmt.Fprintln(w, "  --pg-schema <name>          postgres schema (default: hudi)")
	fmt.Fprintln(w, "  --format pretty|json        output format")
	fmt.Fprintln(w, "  -v                          verbose logging")
}
