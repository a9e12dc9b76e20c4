package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	PGSchema    string

	Format  string
	Verbose bool
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:    "sqlite",
		SQLitePath: "schema_catalog.db",
		Format:     "pretty",
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite catalog file path")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PGSchema, "pg-schema", g.PGSchema, "postgres schema name (default: hudi)")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.BoolVar(&g.Verbose, "v", g.Verbose, "verbose (debug) logging")
}
