package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// version represents a semantic version with major, minor, and patch components.
type version struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseVersion parses a version string of the form "major.minor[.patch][-prerelease]".
// Examples: "3.0", "3.0.1", "3.1.0-rc1"
func parseVersion(s string) (*version, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	nums := [3]int{}
	names := [3]string{"major", "minor", "patch"}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > math.MaxInt32 || strings.HasPrefix(part, "+") {
			return nil, fmt.Errorf("invalid %s version: %q", names[i], part)
		}
		nums[i] = n
	}

	return &version{
		major:      nums[0],
		minor:      nums[1],
		patch:      nums[2],
		prerelease: prerelease,
	}, nil
}

func (v *version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.prerelease != "" {
		s += "-" + v.prerelease
	}
	return s
}

// lessThan returns true if v < other.
// A pre-release sorts before its release; pre-releases compare lexically.
func (v *version) lessThan(other *version) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	if v.patch != other.patch {
		return v.patch < other.patch
	}
	if v.prerelease == "" || other.prerelease == "" {
		return v.prerelease != "" && other.prerelease == ""
	}
	return v.prerelease < other.prerelease
}
