package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBase is used when a template has a blank base.
const DefaultBase = "asset"

// Template describes a sequential naming scheme.
type Template struct {
	// Base is the leading part of every generated name
	Base string `json:"base" yaml:"base"`

	// StartIndex is the number given to the first item
	StartIndex int `json:"start_index" yaml:"start_index"`

	// PadWidth zero-pads the number to this width; 0 disables padding
	PadWidth int `json:"pad_width" yaml:"pad_width"`

	// Separator goes between Base and the number
	Separator string `json:"separator" yaml:"separator"`

	// PreserveExtension appends the source extension to the generated name
	PreserveExtension bool `json:"preserve_extension" yaml:"preserve_extension"`
}

// DefaultTemplate returns the scheme used when nothing is configured.
func DefaultTemplate() Template {
	return Template{
		Base:              DefaultBase,
		StartIndex:        1,
		PadWidth:          3,
		Separator:         "_",
		PreserveExtension: true,
	}
}

// Normalized returns a copy with a non-blank base and non-negative numbers.
func (t Template) Normalized() Template {
	t.Base = strings.TrimSpace(t.Base)
	if t.Base == "" {
		t.Base = DefaultBase
	}
	t.StartIndex = max(0, t.StartIndex)
	t.PadWidth = max(0, t.PadWidth)
	return t
}

// Number formats the sequence number for the item at index.
func (t Template) Number(index int) string {
	n := t.StartIndex + index
	if t.PadWidth > 0 {
		return fmt.Sprintf("%0*d", t.PadWidth, n)
	}
	return strconv.Itoa(n)
}

// Name generates the name for the item at zero-based index.
// ext includes the leading dot and is only used when PreserveExtension is set.
func (t Template) Name(index int, ext string) string {
	t = t.Normalized()
	name := t.Base + t.Separator + t.Number(index)
	if t.PreserveExtension {
		name += ext
	}
	return name
}

// Generate produces names for count items with the given extensions.
// exts may be nil; missing entries are treated as having no extension.
func (t Template) Generate(count int, exts []string) []string {
	names := make([]string, count)
	for i := range names {
		ext := ""
		if i < len(exts) {
			ext = exts[i]
		}
		names[i] = t.Name(i, ext)
	}
	return names
}

// SafeName generates the name at index and makes it filesystem-legal.
// When sanitize is false only the reserved-name guard is applied.
func (t Template) SafeName(index int, ext string, sanitize bool) string {
	name := t.Name(index, ext)
	if sanitize {
		name = Sanitize(name)
	}
	if IsReserved(name) {
		stem, e := SplitExt(name)
		name = stem + "_" + e
	}
	return name
}
