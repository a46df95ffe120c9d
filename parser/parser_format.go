package parser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasmodel"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ParseSourceFormat parses a format name ("json", "yaml", "yml", "auto").
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SourceFormatAuto, nil
	case "json":
		return SourceFormatJSON, nil
	case "yaml", "yml":
		return SourceFormatYAML, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("parser: unknown format %q (want json, yaml or auto)", s)
	}
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// A JSON document starts with '{' (after optional whitespace and BOM).
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches the document at urlStr and returns its bytes and Content-Type header.
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oasmodel.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is caller-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if p.MaxSize > 0 {
		body = io.LimitReader(resp.Body, p.MaxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// detectFormatFromURL detects the format from a URL path, then from the Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	if parsedURL, err := url.Parse(urlStr); err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}

	contentType = strings.ToLower(contentType)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	switch strings.TrimSpace(contentType) {
	case "application/json", "application/vnd.oai.openapi+json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml", "application/vnd.oai.openapi":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}
