package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oasmodel/internal/cliutil"
	"github.com/erraggy/oasmodel/internal/httputil"
	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/walker"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	decodeFlags
	Output string
	Quiet  bool
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Dialect, "dialect", "auto", "decoding rules: auto, strict (3.0.x) or loose (3.1+)")
	fs.StringVar(&flags.Format, "input-format", "auto", "input syntax: auto, json or yaml")
	fs.IntVar(&flags.MaxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth of the input")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log decoder activity to stderr")
	fs.StringVar(&flags.Output, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the report, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the report, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmodel parse [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Decode an OpenAPI 3.x document and summarize its operations.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasmodel parse openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasmodel parse --dialect loose openapi.json\n")
		cliutil.Writef(fs.Output(), "  oasmodel parse --format json https://example.com/api/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasmodel parse -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Decoding successful\n")
		cliutil.Writef(fs.Output(), "  1    Decoding failed\n")
	}

	return fs, flags
}

// OperationRow is one operation in the parse report.
type OperationRow struct {
	Method      string   `json:"method"                yaml:"method"`
	Path        string   `json:"path"                  yaml:"path"`
	OperationID string   `json:"operationId"           yaml:"operationId"`
	Responses   []string `json:"responses,omitempty"   yaml:"responses,omitempty"`
}

// ParseReport is the structured form of the parse command's output.
type ParseReport struct {
	OpenAPI    string               `json:"openapi"              yaml:"openapi"`
	Dialect    string               `json:"dialect"              yaml:"dialect"`
	Format     string               `json:"format"               yaml:"format"`
	Title      string               `json:"title,omitempty"      yaml:"title,omitempty"`
	Version    string               `json:"version,omitempty"    yaml:"version,omitempty"`
	Stats      parser.DocumentStats `json:"stats"                yaml:"stats"`
	Operations []OperationRow       `json:"operations,omitempty" yaml:"operations,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"   yaml:"warnings,omitempty"`
}

// HandleParse executes the parse command
func HandleParse(args []string, streams Streams) error {
	fs, flags := SetupParseFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Output); err != nil {
		return err
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

	report, err := buildParseReport(result)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(streams.Err, "OpenAPI Document Decoder\n")
		cliutil.Writef(streams.Err, "========================\n\n")
		OutputSpecHeader(streams.Err, specPath, result)
		OutputSpecStats(streams.Err, result)
		cliutil.Writef(streams.Err, "\n")
		outputWarnings(streams.Err, result.Warnings)
	}

	if flags.Output != FormatText {
		return OutputStructured(streams.Out, report, flags.Output)
	}
	renderParseReport(streams, report)
	return nil
}

// buildParseReport collects the operations of result in path order, with
// methods in canonical order.
func buildParseReport(result *parser.ParseResult) (*ParseReport, error) {
	report := &ParseReport{
		OpenAPI:  result.Version,
		Dialect:  result.Dialect.String(),
		Format:   string(result.SourceFormat),
		Stats:    result.Stats,
		Warnings: result.Warnings,
	}
	if info := result.Spec.Info; info != nil {
		report.Title = info.Title
		report.Version = info.Version
	}

	ops, err := walker.CollectOperations(result.Spec)
	if err != nil {
		return nil, err
	}
	for _, op := range ops.All {
		report.Operations = append(report.Operations, OperationRow{
			Method:      op.Method,
			Path:        op.PathTemplate,
			OperationID: op.Operation.OperationID,
			Responses:   maputil.SortedKeys(op.Operation.Responses),
		})
	}
	return report, nil
}

// renderParseReport writes the text form of report: the title, then one
// table row per operation.
func renderParseReport(streams Streams, report *ParseReport) {
	if report.Title != "" {
		cliutil.Writef(streams.Out, "%s %s\n\n", report.Title, report.Version)
	}
	if len(report.Operations) == 0 {
		cliutil.Writef(streams.Out, "No operations.\n")
		return
	}

	upper := cases.Upper(language.Und)
	rows := make([][]string, 0, len(report.Operations))
	for _, op := range report.Operations {
		described := make([]string, 0, len(op.Responses))
		for _, code := range op.Responses {
			described = append(described, httputil.DescribeStatusCode(code))
		}
		rows = append(rows, []string{
			upper.String(op.Method),
			op.Path,
			op.OperationID,
			strings.Join(described, ", "),
		})
	}
	cliutil.WriteTable(streams.Out, []string{"METHOD", "PATH", "OPERATION ID", "RESPONSES"}, rows)
}
