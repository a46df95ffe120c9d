// Package commands provides CLI command handlers for oasmodel.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/internal/cliutil"
	"github.com/erraggy/oasmodel/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Streams are the standard streams a command reads from and writes to.
// Documents and reports go to Out; diagnostics go to Err.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
		bytes = append(bytes, '\n')
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = w.Write(bytes)
	return err
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// decodeFlags are the flags shared by every command that decodes a document.
type decodeFlags struct {
	Dialect  string
	Format   string
	MaxDepth int
	Verbose  bool
}

// newParser builds a parser from the shared decode flags. With Verbose set,
// the parser's debug log goes to streams.Err.
func (f *decodeFlags) newParser(streams Streams) (*parser.Parser, error) {
	dialect, err := parser.ParseDialect(f.Dialect)
	if err != nil {
		return nil, err
	}
	format, err := parser.ParseSourceFormat(f.Format)
	if err != nil {
		return nil, err
	}

	p := parser.New()
	p.Dialect = dialect
	p.Format = format
	if f.MaxDepth > 0 {
		p.MaxDepth = f.MaxDepth
	}
	if f.Verbose {
		handler := slog.NewTextHandler(streams.Err, &slog.HandlerOptions{Level: slog.LevelDebug})
		p.Logger = parser.NewSlogAdapter(slog.New(handler))
	}
	return p, nil
}

// decodeSpec reads the document at specPath, or stdin for "-".
func decodeSpec(p *parser.Parser, specPath string, streams Streams) (*parser.ParseResult, error) {
	if specPath == StdinFilePath {
		result, err := p.ParseReader(streams.In)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return result, nil
	}
	result, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return result, nil
}

// OutputSpecHeader writes the common document header to w.
func OutputSpecHeader(w io.Writer, specPath string, result *parser.ParseResult) {
	cliutil.Writef(w, "oasmodel version: %s\n", oasmodel.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "OAS Version: %s\n", result.Version)
	cliutil.Writef(w, "Dialect: %s\n", result.Dialect)
}

// OutputSpecStats writes the common document statistics to w.
func OutputSpecStats(w io.Writer, result *parser.ParseResult) {
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	cliutil.Writef(w, "Paths: %d\n", result.Stats.PathCount)
	cliutil.Writef(w, "Operations: %d\n", result.Stats.OperationCount)
	cliutil.Writef(w, "Schemas: %d\n", result.Stats.SchemaCount)
	cliutil.Writef(w, "Components: %d\n", result.Stats.ComponentCount)
	cliutil.Writef(w, "References: %d\n", result.Stats.ReferenceCount)
	cliutil.Writef(w, "Load Time: %v\n", result.LoadTime)
}

// outputWarnings writes result's warnings to w, if any.
func outputWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	cliutil.Writef(w, "Warnings:\n")
	for _, warning := range warnings {
		cliutil.Writef(w, "  - %s\n", warning)
	}
	cliutil.Writef(w, "\n")
}
