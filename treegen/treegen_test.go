package treegen

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "basic",
			cfg:  Config{Dirs: 10, Files: 30, Depth: 3, Seed: 42},
		},
		{
			name: "flat",
			cfg:  Config{Dirs: 0, Files: 20, Depth: 1, Seed: 1},
		},
		{
			name: "dirs only",
			cfg:  Config{Dirs: 8, Files: 0, Depth: 2, Seed: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()

			summary, err := NewGenerator(tt.cfg).Generate(root)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			if summary.DirsCreated != tt.cfg.Dirs {
				t.Errorf("dirs created = %d, want %d",
					summary.DirsCreated, tt.cfg.Dirs)
			}
			if summary.FilesCreated != tt.cfg.Files {
				t.Errorf("files created = %d, want %d",
					summary.FilesCreated, tt.cfg.Files)
			}

			gotDirs, gotFiles := countTree(t, root)

			if gotDirs != tt.cfg.Dirs {
				t.Errorf("dirs on disk = %d, want %d", gotDirs, tt.cfg.Dirs)
			}
			if gotFiles != tt.cfg.Files {
				t.Errorf("files on disk = %d, want %d", gotFiles, tt.cfg.Files)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Dirs: 12, Files: 40, Depth: 4, Seed: 99}

	root1 := t.TempDir()
	root2 := t.TempDir()

	if _, err := NewGenerator(cfg).Generate(root1); err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if _, err := NewGenerator(cfg).Generate(root2); err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	layout1 := relPaths(t, root1)
	layout2 := relPaths(t, root2)

	if len(layout1) != len(layout2) {
		t.Fatalf("layouts differ in size: %d vs %d", len(layout1), len(layout2))
	}

	for i := range layout1 {
		if layout1[i] != layout2[i] {
			t.Fatalf("layouts diverge at %d: %q vs %q",
				i, layout1[i], layout2[i])
		}
	}
}

func TestGenerateRespectsDepth(t *testing.T) {
	cfg := Config{Dirs: 30, Files: 0, Depth: 2, Seed: 3}

	root := t.TempDir()
	if _, err := NewGenerator(cfg).Generate(root); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if rel == "." {
			return nil
		}

		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if depth > cfg.Depth+1 {
			t.Errorf("%s is at depth %d, max is %d", rel, depth, cfg.Depth+1)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

func countTree(t *testing.T, root string) (dirs, files int) {
	t.Helper()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			dirs++
		} else {
			files++
		}

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	return dirs, files
}

func relPaths(t *testing.T, root string) []string {
	t.Helper()

	var paths []string

	err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		paths = append(paths, rel)

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	sort.Strings(paths)

	return paths
}
