// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodel/oaserrors"
)

// Source names an input option and whether the caller set it.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// pkg prefixes the error message (e.g., "parser").
func ValidateSingleInputSource(pkg string, sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: fmt.Sprintf("%s: must specify an input source (use %s)", pkg, strings.Join(names, ", ")),
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: fmt.Sprintf("%s: must specify exactly one input source", pkg),
		}
	}
}
