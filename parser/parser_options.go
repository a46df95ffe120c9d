package parser

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oasmodel"
	"github.com/erraggy/oasmodel/internal/options"
	"github.com/erraggy/oasmodel/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	dialect    Dialect
	format     SourceFormat
	maxDepth   int
	maxSize    int64
	userAgent  string
	httpClient *http.Client
	logger     Logger

	// sourceName overrides SourcePath in the result
	sourceName *string
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithDialect(parser.DialectStrict),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Dialect:    cfg.dialect,
		Format:     cfg.format,
		MaxDepth:   cfg.maxDepth,
		MaxSize:    cfg.maxSize,
		UserAgent:  cfg.userAgent,
		HTTPClient: cfg.httpClient,
		Logger:     cfg.logger,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		format:    SourceFormatAuto,
		maxDepth:  DefaultMaxDepth,
		userAgent: oasmodel.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("parser",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithDialect selects the decoding rules.
// Default: DialectAuto (picked from the openapi version)
func WithDialect(d Dialect) Option {
	return func(cfg *parseConfig) error {
		switch d {
		case DialectAuto, DialectStrict, DialectLoose:
			cfg.dialect = d
			return nil
		default:
			return &oaserrors.ConfigError{Option: "dialect", Value: int(d), Message: "unknown dialect"}
		}
	}
}

// WithFormat forces the input format instead of detecting it.
// Default: SourceFormatAuto
func WithFormat(f SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch f {
		case SourceFormatAuto, SourceFormatJSON, SourceFormatYAML:
			cfg.format = f
			return nil
		default:
			return &oaserrors.ConfigError{Option: "format", Value: string(f), Message: "unsupported format"}
		}
	}
}

// WithMaxDepth caps the nesting depth of the input document.
// Default: 256
func WithMaxDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth <= 0 {
			return &oaserrors.ConfigError{Option: "maxDepth", Value: depth, Message: "must be positive"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithMaxSize caps the input size in bytes.
// Default: no limit
func WithMaxSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return &oaserrors.ConfigError{Option: "maxSize", Value: size, Message: "must not be negative"}
		}
		cfg.maxSize = size
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasmodel/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed.
//
// Example:
//
//	logger := parser.NewSlogAdapter(slog.Default())
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(logger),
//	)
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides the SourcePath reported in the result, which is
// useful for readers and byte slices.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
