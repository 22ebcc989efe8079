package generator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

// APIKey derives the API compatibility key of a version or constraint:
// the major version when it is non-zero, otherwise "0" followed by the
// minor version ("^7.5.6" → "7", "^0.2.0" → "02"). Values semver cannot
// read fall back to their alphanumeric characters, or "0" when none remain.
func APIKey(constraint string) string {
	v := strings.TrimSpace(constraint)
	if i := strings.IndexAny(v, " ,|"); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimLeft(v, "^~=<>v")

	sv, err := semver.NewVersion(v)
	if err != nil {
		return sanitizeKey(constraint)
	}
	if sv.Major() > 0 {
		return strconv.FormatUint(sv.Major(), 10)
	}
	return "0" + strconv.FormatUint(sv.Minor(), 10)
}

func sanitizeKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// exportedSymbol returns the global symbol a dependency is exposed under
// once loaded, e.g. "rxjs_APIv7".
func exportedSymbol(name, constraint string) string {
	return name + "_APIv" + APIKey(constraint)
}
