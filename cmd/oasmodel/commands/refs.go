package commands

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/erraggy/oasmodel/internal/cliutil"
	"github.com/erraggy/oasmodel/internal/pathutil"
	"github.com/erraggy/oasmodel/parser"
	"github.com/erraggy/oasmodel/walker"
)

// Reference status values reported by the refs command.
const (
	RefStatusOK       = "ok"
	RefStatusMissing  = "missing"
	RefStatusExternal = "external"
	RefStatusNested   = "unchecked"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	decodeFlags
	Output      string
	MissingOnly bool
	Quiet       bool
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
// Returns the FlagSet and a RefsFlags struct with bound flag variables.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Dialect, "dialect", "auto", "decoding rules: auto, strict (3.0.x) or loose (3.1+)")
	fs.StringVar(&flags.Format, "input-format", "auto", "input syntax: auto, json or yaml")
	fs.IntVar(&flags.MaxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth of the input")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log decoder activity to stderr")
	fs.StringVar(&flags.Output, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.MissingOnly, "missing", false, "only list references whose component does not exist")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the report, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the report, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasmodel refs [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "List the $ref values of an OpenAPI 3.x document and check that each\n")
		cliutil.Writef(fs.Output(), "local component reference names an existing component.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nStatus:\n")
		cliutil.Writef(fs.Output(), "  ok         the component exists\n")
		cliutil.Writef(fs.Output(), "  missing    no component by that name\n")
		cliutil.Writef(fs.Output(), "  external   points into another document; not checked\n")
		cliutil.Writef(fs.Output(), "  unchecked  local pointer below or outside components; not checked\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasmodel refs openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasmodel refs --missing --format json openapi.yaml\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Every component reference has a target\n")
		cliutil.Writef(fs.Output(), "  1    Decoding failed or a reference is missing its component\n")
	}

	return fs, flags
}

// RefEntry describes one distinct $ref value.
type RefEntry struct {
	Ref    string `json:"ref"            yaml:"ref"`
	Count  int    `json:"count"          yaml:"count"`
	Status string `json:"status"         yaml:"status"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	// FirstSeen is the JSON path of the first occurrence.
	FirstSeen string `json:"firstSeen" yaml:"firstSeen"`
}

// HandleRefs executes the refs command
func HandleRefs(args []string, streams Streams) error {
	fs, flags := SetupRefsFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("refs command requires exactly one file path, URL, or '-' for stdin")
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

	entries, missing, err := CheckRefs(result.Spec)
	if err != nil {
		return err
	}
	distinct := len(entries)
	if flags.MissingOnly {
		entries = filterMissing(entries)
	}

	if !flags.Quiet {
		OutputSpecHeader(streams.Err, specPath, result)
		cliutil.Writef(streams.Err, "References: %d (%d distinct)\n\n", result.Stats.ReferenceCount, distinct)
	}

	if flags.Output != FormatText {
		if err := OutputStructured(streams.Out, entries, flags.Output); err != nil {
			return err
		}
	} else {
		renderRefs(streams, entries)
	}

	return errors.Join(missing...)
}

// CheckRefs lists the distinct $ref values of spec in sorted order with
// their status. Every missing component is also reported as a
// *oaserrors.ReferenceError in missing.
func CheckRefs(spec *parser.Spec) (entries []RefEntry, missing []error, err error) {
	refs, err := walker.CollectRefs(spec)
	if err != nil {
		return nil, nil, err
	}

	for _, ref := range refs.UniqueRefs() {
		occurrences := refs.ByRef[ref]
		entry := RefEntry{
			Ref:       ref,
			Count:     len(occurrences),
			FirstSeen: occurrences[0].SourcePath,
		}

		switch {
		case !pathutil.IsLocalRef(ref):
			entry.Status = RefStatusExternal
		default:
			if _, _, ok := pathutil.SplitComponentRef(ref); !ok {
				entry.Status = RefStatusNested
				break
			}
			target, lookupErr := walker.LookupComponent(spec, ref)
			if lookupErr != nil {
				entry.Status = RefStatusMissing
				missing = append(missing, lookupErr)
				break
			}
			entry.Status = RefStatusOK
			entry.Kind = target.Kind
			entry.Name = target.Name
		}
		entries = append(entries, entry)
	}
	return entries, missing, nil
}

func filterMissing(entries []RefEntry) []RefEntry {
	var filtered []RefEntry
	for _, e := range entries {
		if e.Status == RefStatusMissing {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func renderRefs(streams Streams, entries []RefEntry) {
	if len(entries) == 0 {
		cliutil.Writef(streams.Out, "No references.\n")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Ref, strconv.Itoa(e.Count), e.Status, e.FirstSeen})
	}
	cliutil.WriteTable(streams.Out, []string{"REF", "COUNT", "STATUS", "FIRST SEEN"}, rows)
}
