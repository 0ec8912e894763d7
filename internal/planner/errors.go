package planner

import "gitlab.com/tozd/go/errors"

var (
	// ErrNoEntries is returned when a rename is requested for zero files.
	ErrNoEntries = errors.New("no files selected")

	// ErrMixedDirectories is returned when rename inputs span several directories.
	ErrMixedDirectories = errors.New("all files must be in the same directory")

	// ErrEmptyFind is returned when find/replace is given an empty search string.
	ErrEmptyFind = errors.New("find text must not be empty")

	// ErrInvalidReplacement is returned when a replacement would introduce a path separator.
	ErrInvalidReplacement = errors.New("replacement must not contain path separators")

	// ErrInvalidTemplate is returned when a template base or separator contains a path separator.
	ErrInvalidTemplate = errors.New("template base and separator must not contain path separators")

	// ErrInvalidName is returned when an explicit name is a path rather than a name.
	ErrInvalidName = errors.New("name must not contain path separators")
)
