package parser

// OASVersion represents each canonical OpenAPI 3.x release, as listed at
// https://github.com/OAI/OpenAPI-Specification/releases
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion300 OpenAPI Specification Version 3.0.0
	OASVersion300
	// OASVersion301 OpenAPI Specification Version 3.0.1
	OASVersion301
	// OASVersion302 OpenAPI Specification Version 3.0.2
	OASVersion302
	// OASVersion303 OpenAPI Specification Version 3.0.3
	OASVersion303
	// OASVersion304 OpenAPI Specification Version 3.0.4
	OASVersion304
	// OASVersion310 OpenAPI Specification Version 3.1.0
	OASVersion310
	// OASVersion311 OpenAPI Specification Version 3.1.1
	OASVersion311
	// OASVersion312 OpenAPI Specification Version 3.1.2
	OASVersion312
	// OASVersion320 OpenAPI Specification Version 3.2.0
	OASVersion320
)

// seriesInfo pre-computed info for a major.minor version series
type seriesInfo struct {
	// patches maps patch version -> OASVersion for this series
	patches map[int]OASVersion
	// maxPatch is the highest known patch version in this series
	maxPatch int
}

var (
	versionToString = map[OASVersion]string{
		OASVersion300: "3.0.0",
		OASVersion301: "3.0.1",
		OASVersion302: "3.0.2",
		OASVersion303: "3.0.3",
		OASVersion304: "3.0.4",
		OASVersion310: "3.1.0",
		OASVersion311: "3.1.1",
		OASVersion312: "3.1.2",
		OASVersion320: "3.2.0",
	}

	stringToVersion = func() map[string]OASVersion {
		m := make(map[string]OASVersion, len(versionToString))
		for k, v := range versionToString {
			m[v] = k
		}
		return m
	}()

	// versionSeries maps minor version -> seriesInfo for the 3.x line
	versionSeries = func() map[int]seriesInfo {
		m := make(map[int]seriesInfo)
		for oasVer, verStr := range versionToString {
			v, err := parseVersion(verStr)
			if err != nil {
				continue
			}
			info, ok := m[v.minor]
			if !ok {
				info = seriesInfo{patches: make(map[int]OASVersion), maxPatch: -1}
			}
			info.patches[v.patch] = oasVer
			info.maxPatch = max(info.maxPatch, v.patch)
			m[v.minor] = info
		}
		return m
	}()
)

func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a valid version
func (v OASVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// Dialect returns the dialect documents of this version decode with.
func (v OASVersion) Dialect() Dialect {
	switch {
	case !v.IsValid():
		return DialectAuto
	case v <= OASVersion304:
		return DialectStrict
	default:
		return DialectLoose
	}
}

// ParseVersion parses s into the closest known OASVersion, and returns false
// if s is not a 3.x version this package knows a series for.
//
//   - exact matches: "3.0.3" -> OASVersion303
//   - future patches map to the latest known patch: "3.0.9" -> OASVersion304
//   - pre-releases map to their base: "3.1.0-rc1" -> OASVersion310
func ParseVersion(s string) (OASVersion, bool) {
	if v, ok := stringToVersion[s]; ok {
		return v, true
	}

	ver, err := parseVersion(s)
	if err != nil || ver.major != 3 {
		return Unknown, false
	}
	info, ok := versionSeries[ver.minor]
	if !ok {
		return Unknown, false
	}
	if v, ok := info.patches[ver.patch]; ok {
		return v, true
	}
	if ver.patch > info.maxPatch {
		return info.patches[info.maxPatch], true
	}
	for p := ver.patch; p >= 0; p-- {
		if v, ok := info.patches[p]; ok {
			return v, true
		}
	}
	return Unknown, false
}
