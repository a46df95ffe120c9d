// Package fileutil holds file-writing conventions shared by the CLI and the
// MCP server.
package fileutil

import "os"

// OwnerReadWrite is the permission mode for re-encoded documents, which may
// describe private APIs.
const OwnerReadWrite os.FileMode = 0o600
