package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasmodel/internal/cliutil"
	"github.com/erraggy/oasmodel/internal/fileutil"
	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/parser"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	decodeFlags
	Target string
	Output string
	Quiet  bool
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Target, "t", "", "target format: json or yaml (default: the other one)")
	fs.StringVar(&flags.Target, "target", "", "target format: json or yaml (default: the other one)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Dialect, "dialect", "auto", "decoding rules: auto, strict (3.0.x) or loose (3.1+)")
	fs.StringVar(&flags.Format, "input-format", "auto", "input syntax: auto, json or yaml")
	fs.IntVar(&flags.MaxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth of the input")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log decoder activity to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmodel convert [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Decode an OpenAPI 3.x document and re-encode it as JSON or YAML.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasmodel convert openapi.yaml -o openapi.json\n")
		cliutil.Writef(fs.Output(), "  oasmodel convert -t yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.json | oasmodel convert -q - > openapi.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - The output is written from the typed model: keys are in canonical order\n")
		cliutil.Writef(fs.Output(), "  - Fields the model does not carry are dropped\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string, streams Streams) error {
	fs, flags := SetupConvertFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one file path, URL, or '-' for stdin")
	}

	var target parser.SourceFormat
	if flags.Target != "" {
		t, err := parser.ParseSourceFormat(flags.Target)
		if err != nil {
			return err
		}
		target = t
	}

	p, err := flags.newParser(streams)
	if err != nil {
		return err
	}
	specPath := fs.Arg(0)
	result, err := decodeSpec(p, specPath, streams)
	if err != nil {
		return err
	}

	if target == "" || target == parser.SourceFormatAuto {
		target = oppositeFormat(result.SourceFormat)
	}
	data, err := result.Marshal(target)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if flags.Output != "" {
		cleaned, err := pathutil.SanitizeOutputPath(flags.Output)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cleaned, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	} else if _, err := streams.Out.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !flags.Quiet {
		dest := "stdout"
		if flags.Output != "" {
			dest = flags.Output
		}
		cliutil.Writef(streams.Err, "Converted %s (%s, %s dialect) to %s: %s\n",
			FormatSpecPath(specPath), result.SourceFormat, result.Dialect, target, dest)
	}
	return nil
}

// oppositeFormat returns JSON for YAML input and YAML for everything else.
func oppositeFormat(f parser.SourceFormat) parser.SourceFormat {
	if f == parser.SourceFormatYAML {
		return parser.SourceFormatJSON
	}
	return parser.SourceFormatYAML
}
