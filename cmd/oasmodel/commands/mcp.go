package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/oasmodel/internal/cliutil"
	"github.com/erraggy/oasmodel/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It has no flags of
// its own; the server reads OASMODEL_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmodel mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP server over stdio exposing the decode, encode, walk_refs\n")
		cliutil.Writef(fs.Output(), "and lookup_ref tools.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASMODEL_DIALECT          auto, strict or loose (default: auto)\n")
		cliutil.Writef(fs.Output(), "  OASMODEL_MAX_DEPTH        input nesting limit (default: 256)\n")
		cliutil.Writef(fs.Output(), "  OASMODEL_REF_LIMIT        walk_refs result limit (default: 100)\n")
		cliutil.Writef(fs.Output(), "  OASMODEL_CACHE_ENABLED    cache decoded documents (default: true)\n")
		cliutil.Writef(fs.Output(), "  OASMODEL_ALLOW_PRIVATE_IPS  allow url inputs on private networks (default: false)\n")
	}
	return fs
}

// HandleMCP executes the mcp command. It blocks until the client disconnects
// or the process is interrupted.
func HandleMCP(args []string, streams Streams) error {
	fs := SetupMCPFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return mcpserver.Run(ctx)
}
