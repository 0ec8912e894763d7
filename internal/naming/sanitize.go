// Package naming produces filesystem-legal file names.
//
// It covers two concerns shared by every reorganization mode:
//   - Sanitize: turn an arbitrary proposed name into a usable one
//   - Template: generate deterministic sequential names (base, index, padding)
//
// Both are pure string functions; nothing here touches the filesystem.
package naming

import (
	"path/filepath"
	"strings"
)

// Placeholder is substituted when sanitizing leaves nothing behind.
const Placeholder = "unnamed"

// illegalChars are the characters rejected by at least one supported filesystem.
const illegalChars = `<>:"/\|?*`

// reservedNames are device names that cannot be used as a file stem on Windows.
var reservedNames = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

func isIllegalRune(r rune) bool {
	return r < 0x20 || strings.ContainsRune(illegalChars, r)
}

// Sanitize normalizes name into a filesystem-legal file name.
//
// Illegal and control characters become '_', trailing spaces and dots are
// stripped, an empty result becomes Placeholder, and a reserved device stem
// gets a '_' appended before the extension. Sanitize is idempotent.
func Sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if isIllegalRune(r) {
			return '_'
		}
		return r
	}, name)
	cleaned = strings.TrimRight(cleaned, " .")
	if cleaned == "" {
		return Placeholder
	}
	if IsReserved(cleaned) {
		stem, ext := SplitExt(cleaned)
		cleaned = stem + "_" + ext
	}
	return cleaned
}

// HasIllegalChars reports whether name contains a character Sanitize would
// replace, or ends with a space or dot.
func HasIllegalChars(name string) bool {
	if strings.IndexFunc(name, isIllegalRune) >= 0 {
		return true
	}
	return strings.TrimRight(name, " .") != name
}

// IsReserved reports whether the stem of name is a reserved device name.
// The comparison ignores case and surrounding whitespace.
func IsReserved(name string) bool {
	stem, _ := SplitExt(name)
	_, ok := reservedNames[strings.ToLower(strings.TrimSpace(stem))]
	return ok
}

// SplitExt splits name into stem and extension. A leading dot does not start
// an extension, so ".gitignore" has an empty extension.
func SplitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return name[:len(name)-len(ext)], ext
}
