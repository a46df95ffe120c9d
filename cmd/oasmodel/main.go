package main

import (
	"io"
	"os"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/cmd/oasmodel/commands"
	"github.com/erraggy/oasmodel/internal/cliutil"
)

// command is one CLI subcommand.
type command struct {
	name    string
	summary string
	run     func(args []string, streams commands.Streams) error
}

var commandTable = []command{
	{"parse", "Decode a document and summarize its operations", commands.HandleParse},
	{"convert", "Re-encode a document as JSON or YAML", commands.HandleConvert},
	{"refs", "List $refs and check their components exist", commands.HandleRefs},
	{"mcp", "Run the MCP server over stdio", commands.HandleMCP},
}

func main() {
	os.Exit(run(os.Args[1:], commands.StdStreams()))
}

// run dispatches args to a subcommand and returns the process exit code.
func run(args []string, streams commands.Streams) int {
	if len(args) < 1 {
		printUsage(streams.Err)
		return 1
	}

	name := args[0]
	switch name {
	case "version", "-v", "--version":
		cliutil.Writef(streams.Out, "oasmodel v%s\n", oasmodel.Version())
		if len(args) > 1 && (args[1] == "-verbose" || args[1] == "--verbose") {
			cliutil.Writef(streams.Out, "%s\n", oasmodel.BuildInfo())
		}
		return 0
	case "help", "-h", "--help":
		printUsage(streams.Out)
		return 0
	}

	for _, cmd := range commandTable {
		if cmd.name == name {
			if err := cmd.run(args[1:], streams); err != nil {
				cliutil.Writef(streams.Err, "Error: %v\n", err)
				return 1
			}
			return 0
		}
	}

	cliutil.Writef(streams.Err, "Unknown command: %s\n", name)
	if suggestion := suggestCommand(name); suggestion != "" {
		cliutil.Writef(streams.Err, "Did you mean '%s'?\n", suggestion)
	}
	cliutil.Writef(streams.Err, "\n")
	printUsage(streams.Err)
	return 1
}

func printUsage(w io.Writer) {
	cliutil.Writef(w, "oasmodel - typed OpenAPI 3.x documents\n\n")
	cliutil.Writef(w, "Usage:\n")
	cliutil.Writef(w, "  oasmodel <command> [flags] <file|url|->\n\n")
	cliutil.Writef(w, "Commands:\n")
	for _, cmd := range commandTable {
		cliutil.Writef(w, "  %-9s %s\n", cmd.name, cmd.summary)
	}
	cliutil.Writef(w, "  %-9s %s\n", "version", "Show version information")
	cliutil.Writef(w, "  %-9s %s\n", "help", "Show this help message")
	cliutil.Writef(w, "\nRun 'oasmodel <command> --help' for more information on a command.\n")
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	names := []string{"version", "help"}
	for _, cmd := range commandTable {
		names = append(names, cmd.name)
	}

	best, bestDist := "", 3
	for _, name := range names {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
