// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides path building and $ref string utilities for
// OpenAPI document traversal.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// paths incrementally without allocating intermediate strings. The decoder
// pushes a segment per mapping key or sequence index and only materializes
// the path when it reports an error.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("components")
//	path.Push("schemas")
//	path.Push("Pet")
//	path.String()  // "components.schemas.Pet"
//	path.Pointer() // "/components/schemas/Pet"
//
// Array indices are supported via [PathBuilder.PushIndex]:
//
//	path.Push("parameters")
//	path.PushIndex(0)  // "parameters[0]", pointer "/parameters/0"
//
// # Reference Helpers
//
// The document model never resolves a $ref. Consumers that need the target
// strip the local prefix themselves:
//
//	kind, name, ok := pathutil.SplitComponentRef("#/components/schemas/Pet")
//	// kind == pathutil.ComponentSchemas, name == "Pet"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It rejects symlinks.
package pathutil
