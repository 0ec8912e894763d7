package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWithinRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Images"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "direct child", path: filepath.Join(root, "a.png"), want: true},
		{name: "nested missing destination", path: filepath.Join(root, "Images", "new", "a.png"), want: true},
		{name: "root itself", path: root, want: false},
		{name: "parent traversal", path: filepath.Join(root, "..", "escape.png"), want: false},
		{name: "sneaky traversal", path: filepath.Join(root, "Images", "..", "..", "x.png"), want: false},
		{name: "sibling with common prefix", path: root + "-other/a.png", want: false},
		{name: "dot-dot prefixed name stays inside", path: filepath.Join(root, "..hidden.png"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WithinRoot(tt.path, root)
			if err != nil {
				t.Fatalf("WithinRoot returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("WithinRoot(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWithinRoot_SymlinkedRoot(t *testing.T) {
	real := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := WithinRoot(filepath.Join(real, "a.png"), link)
	if err != nil {
		t.Fatalf("WithinRoot returned error: %v", err)
	}
	if !got {
		t.Error("path under the real directory should be inside the symlinked root")
	}
}

func TestResolve_MissingTail(t *testing.T) {
	root := t.TempDir()
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}

	got, err := Resolve(filepath.Join(root, "does", "not", "exist.txt"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(resolvedRoot, "does", "not", "exist.txt")
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}
