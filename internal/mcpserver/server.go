// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasmodel decoder, encoder and reference walker as MCP
// tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasmodel"
)

const serverInstructions = `oasmodel MCP server: decodes, re-encodes and inspects $refs of OpenAPI 3.x documents.

Configuration: defaults come from OASMODEL_* environment variables set in your MCP client config.

Key settings:
- OASMODEL_DIALECT (default: auto) - strict (3.0.x rules), loose (3.1+ rules) or auto (from the openapi version)
- OASMODEL_MAX_DEPTH (default: 256) - nesting depth limit for input documents
- OASMODEL_REF_LIMIT (default: 100) - default result limit for walk_refs
- OASMODEL_REF_DETAIL_LIMIT (default: 25) - default walk_refs limit in detail mode
- OASMODEL_CACHE_ENABLED (default: true) - disable document caching entirely

References are never resolved. lookup_ref finds the single component a local $ref names.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodel", Version: oasmodel.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "decode",
		Description: "Decode an OpenAPI 3.x document into the typed model and return a summary: openapi version, dialect used (strict for 3.0.x, loose for 3.1+), format, title, path/operation/schema/reference counts, the operations, and warnings. Decode failures report the dotted path, field and line of the offending node. Use dialect to force strict or loose rules.",
	}, handleDecode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "encode",
		Description: "Decode an OpenAPI 3.x document and re-encode it from the typed model as JSON or YAML, with canonical key order (methods in get, put, post, delete, head, patch, options, trace order). Use output to write to a file instead of returning the document inline.",
	}, handleEncode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_refs",
		Description: "Walk and count $ref references in an OpenAPI 3.x document. By default, returns unique ref targets ranked by reference count (most-referenced first). Use target to filter to a specific ref (supports * glob, e.g. *schemas/Pet*). Use detail=true to see individual source locations as JSON paths instead of counts. Filter by node_type (schema, parameter, response, header). Use group_by=node_type to get distribution counts. Default limit is configurable via OASMODEL_REF_LIMIT.",
	}, handleWalkRefs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_ref",
		Description: "Look up the component a local $ref names (e.g. #/components/schemas/Pet) without resolving anything further. Returns the component kind and name, whether the entry is a value, a reference or empty, a short summary of the value, and how many times the document references it. Missing components, external refs and pointers below a component are reported as errors.",
	}, handleLookupRef)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.RefLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.RefLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns the default limit for detail mode when none was given.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.RefDetailLimit
	}
	return limit
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages so
// MCP clients do not see the server's directory layout.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort counts items per key and sorts by count descending, ties
// broken by key.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid,
// so matching never meets a bad pattern mid-walk.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}
