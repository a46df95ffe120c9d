// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// Local component reference prefixes for the component kinds the document
// model stores.
const (
	RefPrefixSchemas       = "#/components/schemas/"
	RefPrefixResponses     = "#/components/responses/"
	RefPrefixParameters    = "#/components/parameters/"
	RefPrefixRequestBodies = "#/components/requestBodies/"
	RefPrefixHeaders       = "#/components/headers/"
)

// ComponentKind names a Components map ("schemas", "responses", ...).
type ComponentKind string

// Component kinds, spelled as their Components map keys.
const (
	ComponentSchemas       ComponentKind = "schemas"
	ComponentResponses     ComponentKind = "responses"
	ComponentParameters    ComponentKind = "parameters"
	ComponentRequestBodies ComponentKind = "requestBodies"
	ComponentHeaders       ComponentKind = "headers"
)

var kindPrefixes = map[ComponentKind]string{
	ComponentSchemas:       RefPrefixSchemas,
	ComponentResponses:     RefPrefixResponses,
	ComponentParameters:    RefPrefixParameters,
	ComponentRequestBodies: RefPrefixRequestBodies,
	ComponentHeaders:       RefPrefixHeaders,
}

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapePointerToken(name)
}

// ParameterRef builds "#/components/parameters/{name}".
func ParameterRef(name string) string {
	return RefPrefixParameters + EscapePointerToken(name)
}

// ResponseRef builds "#/components/responses/{name}".
func ResponseRef(name string) string {
	return RefPrefixResponses + EscapePointerToken(name)
}

// HeaderRef builds "#/components/headers/{name}".
func HeaderRef(name string) string {
	return RefPrefixHeaders + EscapePointerToken(name)
}

// RequestBodyRef builds "#/components/requestBodies/{name}".
func RequestBodyRef(name string) string {
	return RefPrefixRequestBodies + EscapePointerToken(name)
}

// ComponentName strips prefix from ref and unescapes the remaining pointer
// token. It reports false if ref does not start with prefix or names a
// nested location (e.g., "#/components/schemas/Pet/properties/id").
func ComponentName(ref, prefix string) (string, bool) {
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return UnescapePointerToken(name), true
}

// SplitComponentRef splits a local component reference into its kind and
// name. External references ("other.yaml#/...") and pointers into anything
// other than a top-level component report false.
func SplitComponentRef(ref string) (ComponentKind, string, bool) {
	for kind, prefix := range kindPrefixes {
		if name, ok := ComponentName(ref, prefix); ok {
			return kind, name, true
		}
	}
	return "", "", false
}

// IsLocalRef reports whether ref points into the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}
