package utils

import (
	"path"
	"strings"
	"unicode"

	"github.com/yukikurage/legal-case-api/internal/constants"
)

// SafeFilename reduces an uploaded filename to its base name so it cannot
// introduce extra path segments into a storage key. It returns "" when
// nothing usable is left.
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	if r := []rune(name); len(r) > constants.MaxFilenameLength {
		name = string(r[len(r)-constants.MaxFilenameLength:])
	}
	return name
}
