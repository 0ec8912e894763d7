package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		path            string
		includeOptional bool
		want            Category
	}{
		{"x.png", true, Images},
		{"X.PNG", true, Images},
		{"clip.mp4", true, Videos},
		{"notes.txt", true, Documents},
		{"script.py", true, Code},
		{"song.mp3", true, Audio},
		{"bundle.7z", true, Archives},
		{"x.unknown", true, Other},
		{"Makefile", true, Other},
		{"script.py", false, Other},
		{"song.mp3", false, Other},
		{"bundle.zip", false, Other},
		{"x.png", false, Images},
		{"/abs/dir/report.PDF", false, Documents},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.path, tt.includeOptional))
		})
	}
}

func TestIsOptional(t *testing.T) {
	for _, c := range Order {
		want := c == Archives || c == Code || c == Audio
		assert.Equal(t, want, IsOptional(c), string(c))
	}
}

func TestExtensionsAreDisjoint(t *testing.T) {
	seen := make(map[string]Category)
	for _, c := range Order {
		for _, ext := range Extensions(c) {
			if prev, ok := seen[ext]; ok {
				t.Errorf("extension %s mapped to both %s and %s", ext, prev, c)
			}
			seen[ext] = c
		}
	}
	assert.Empty(t, Extensions(Other))
}

func TestNewCountsAndRank(t *testing.T) {
	counts := NewCounts()
	assert.Len(t, counts, len(Order))
	assert.Equal(t, 0, Rank(Images))
	assert.Equal(t, len(Order)-1, Rank(Other))
	assert.Equal(t, len(Order), Rank(Category("Bogus")))
}
