// Package category maps file extensions to the buckets used by the sort flow.
package category

import (
	"path/filepath"
	"strings"
)

// Category is a semantic bucket and also the name of its destination directory.
type Category string

const (
	Images    Category = "Images"
	Videos    Category = "Videos"
	Audio     Category = "Audio"
	Documents Category = "Documents"
	Archives  Category = "Archives"
	Code      Category = "Code"
	Other     Category = "Other"
)

// Order is the fixed display order of all buckets.
var Order = []Category{Images, Videos, Audio, Documents, Archives, Code, Other}

var extensions = map[Category][]string{
	Images:    {".png", ".jpg", ".jpeg", ".webp", ".gif", ".bmp", ".tga", ".tiff", ".tif", ".svg"},
	Videos:    {".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v"},
	Audio:     {".mp3", ".wav", ".ogg", ".flac", ".m4a", ".aac"},
	Documents: {".pdf", ".txt", ".md", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx"},
	Archives:  {".zip", ".7z", ".rar", ".tar", ".gz", ".bz2", ".xz"},
	Code:      {".py", ".js", ".ts", ".json", ".yml", ".yaml", ".cs", ".gd", ".gdshader", ".cpp", ".h", ".java"},
}

// byExtension is the inverse of extensions.
var byExtension = func() map[string]Category {
	m := make(map[string]Category)
	for _, c := range Order {
		for _, ext := range extensions[c] {
			m[ext] = c
		}
	}
	return m
}()

// IsOptional reports whether c is dropped to Other when optional buckets are disabled.
func IsOptional(c Category) bool {
	return c == Archives || c == Code || c == Audio
}

// Categorize returns the bucket for path based on its lower-cased extension.
// With includeOptional false, files that would land in an optional bucket map to Other.
func Categorize(path string, includeOptional bool) Category {
	c, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Other
	}
	if !includeOptional && IsOptional(c) {
		return Other
	}
	return c
}

// Extensions returns the extensions mapped to c. Other has none.
func Extensions(c Category) []string {
	return append([]string(nil), extensions[c]...)
}

// NewCounts returns a count map with every bucket present at zero.
func NewCounts() map[Category]int {
	counts := make(map[Category]int, len(Order))
	for _, c := range Order {
		counts[c] = 0
	}
	return counts
}

// Rank returns the position of c in Order, or len(Order) for unknown values.
func Rank(c Category) int {
	for i, o := range Order {
		if o == c {
			return i
		}
	}
	return len(Order)
}
