package cli

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SteNicholas/hudi/internal/cli/commands"
	"github.com/SteNicholas/hudi/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("hudi-schema", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "init":
		return commands.RunInit(g, rest)
	case "schema":
		return commands.RunSchema(g, rest)
	case "apply":
		return commands.RunApply(g, rest)
	case "history":
		return commands.RunHistory(g, rest)
	case "diff":
		return commands.RunDiff(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
