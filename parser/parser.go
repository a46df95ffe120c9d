package parser

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/internal/httputil"
	"github.com/erraggy/oasmodel/internal/maputil"
	"github.com/erraggy/oasmodel/oaserrors"
)

// Parser reads OpenAPI documents from files, URLs, readers or byte slices
// and decodes them with Decode's rules.
type Parser struct {
	// Dialect selects the decoding rules. DialectAuto (the default) picks
	// them from the document's openapi version.
	Dialect Dialect
	// Format forces the input format. SourceFormatAuto (the default) uses the
	// file extension, then the content.
	Format SourceFormat
	// MaxDepth caps the nesting depth of the input. Default: 256
	MaxDepth int
	// MaxSize caps the input size in bytes. 0 means no limit.
	MaxSize int64
	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with a 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		MaxDepth:  DefaultMaxDepth,
		UserAgent: oasmodel.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source OpenAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatAuto requests format detection from the content
	SourceFormatAuto SourceFormat = "auto"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a decoded document and metadata about its source.
//
// The Spec is shared, not copied; callers should treat it as read-only.
type ParseResult struct {
	// Spec is the decoded document
	Spec *Spec
	// SourcePath is the document's input source path that it was read from.
	// For readers and byte slices it is "ParseReader.<format>" or "ParseBytes.<format>".
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the document's openapi version string (e.g., "3.0.3")
	Version string
	// OASVersion is the closest known release for Version, or Unknown
	OASVersion OASVersion
	// Dialect is the dialect the document was decoded with
	Dialect Dialect
	// Warnings contains non-fatal issues such as unusual status codes
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// DecodeTime is the time taken to parse and decode the source data
	DecodeTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Marshal encodes the document. SourceFormatAuto uses the source format.
func (pr *ParseResult) Marshal(format SourceFormat) ([]byte, error) {
	if format == SourceFormatAuto || format == "" {
		format = pr.SourceFormat
	}
	return Encode(pr.Spec, format)
}

// Parse parses an OpenAPI document file or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var (
		data   []byte
		err    error
		format SourceFormat
	)

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = os.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parse(data, format, specPath)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses an OpenAPI document from an io.Reader.
// The SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	if p.MaxSize > 0 {
		r = io.LimitReader(r, p.MaxSize+1)
	}
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parse(data, SourceFormatUnknown, "")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses an OpenAPI document from a byte slice.
// The SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parse(data, SourceFormatUnknown, "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// parse decodes data. hint is the format suggested by the source path, if any.
func (p *Parser) parse(data []byte, hint SourceFormat, sourcePath string) (*ParseResult, error) {
	if p.MaxSize > 0 && int64(len(data)) > p.MaxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        p.MaxSize,
			Actual:       int64(len(data)),
			Message:      "document is too large",
		}
	}

	format := p.Format
	if format == "" || format == SourceFormatAuto {
		format = hint
	}

	start := time.Now()
	root, format, err := readNode(data, format, p.MaxDepth)
	if err != nil {
		return nil, withSourcePath(err, sourcePath)
	}
	spec, dialect, err := decodeDocument(root, format, p.Dialect)
	if err != nil {
		return nil, err
	}
	decodeTime := time.Since(start)

	oasVersion, _ := ParseVersion(spec.OpenAPI)
	result := &ParseResult{
		Spec:         spec,
		SourcePath:   sourcePath,
		SourceFormat: format,
		Version:      spec.OpenAPI,
		OASVersion:   oasVersion,
		Dialect:      dialect,
		DecodeTime:   decodeTime,
		SourceSize:   int64(len(data)),
		Stats:        GetDocumentStats(spec),
	}
	result.Warnings = p.collectWarnings(result)

	p.log().Debug("decoded document",
		"source", sourcePath,
		"format", string(format),
		"version", spec.OpenAPI,
		"dialect", dialect.String(),
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"duration", decodeTime,
	)
	for _, w := range result.Warnings {
		p.log().Warn(w, "source", sourcePath)
	}
	return result, nil
}

// collectWarnings reports document issues that do not prevent decoding.
func (p *Parser) collectWarnings(res *ParseResult) []string {
	var warnings []string

	if res.OASVersion == Unknown {
		warnings = append(warnings, fmt.Sprintf("openapi version %q is not a known 3.x release", res.Version))
	} else if latest, err := parseVersion(OASVersion320.String()); err == nil {
		if v, err := parseVersion(res.Version); err == nil && latest.lessThan(v) {
			warnings = append(warnings, fmt.Sprintf("openapi version %s is newer than the latest known release %s", v, latest))
		}
	}
	if res.OASVersion.IsValid() && p.Dialect != DialectAuto && p.Dialect != res.OASVersion.Dialect() {
		warnings = append(warnings, fmt.Sprintf("decoding openapi %s with the %s dialect", res.Version, p.Dialect))
	}

	for _, path := range maputil.SortedKeys(res.Spec.Paths) {
		item := res.Spec.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range SortMethods(item.Operations) {
			op := item.Operations[method]
			if op == nil {
				continue
			}
			for _, code := range maputil.SortedKeys(op.Responses) {
				if !httputil.ValidateStatusCode(code) {
					warnings = append(warnings, fmt.Sprintf("paths.%s.%s.responses: invalid status code %q", path, method, code))
				}
				for _, mt := range maputil.SortedKeys(op.Responses[code].contentOrNil()) {
					if !httputil.IsValidMediaType(mt) {
						warnings = append(warnings, fmt.Sprintf("paths.%s.%s.responses.%s.content: invalid media type %q", path, method, code, mt))
					}
				}
			}
		}
	}
	return warnings
}

func (r *Response) contentOrNil() map[string]*MediaType {
	if r == nil {
		return nil
	}
	return r.Content
}

// withSourcePath sets the source path on parse errors.
func withSourcePath(err error, path string) error {
	var pe *oaserrors.ParseError
	if errors.As(err, &pe) && path != "" {
		pe.Path = path
	}
	return err
}
