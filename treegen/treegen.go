// Package treegen builds deterministic synthetic directory trees for
// metadata benchmarking. A seeded generator places directories up to a
// depth limit, then scatters empty files across them.
package treegen

import (
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"
)

// Config controls tree generation parameters.
type Config struct {
	Dirs  int
	Files int
	Depth int
	Seed  int64
}

// Summary contains counts of what was created.
type Summary struct {
	DirsCreated  int
	FilesCreated int
}

// Generator produces deterministic trees from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate creates the tree under root, making root if needed, and
// returns a Summary. The same Config always yields the same tree.
func (g *Generator) Generate(root string) (Summary, error) {
	var summary Summary

	if err := os.MkdirAll(root, 0o755); err != nil {
		return summary, fmt.Errorf("create root %s: %w", root, err)
	}

	dirs := []string{root}
	depths := []int{0}

	for i := 0; i < g.cfg.Dirs; i++ {
		parent := g.rng.Intn(len(dirs))
		if depths[parent] >= g.cfg.Depth {
			parent = 0
		}

		dir := filepath.Join(dirs[parent], fmt.Sprintf("d%04d", i))
		if err := os.Mkdir(dir, 0o755); err != nil {
			return summary, fmt.Errorf("create dir %s: %w", dir, err)
		}

		dirs = append(dirs, dir)
		depths = append(depths, depths[parent]+1)
		summary.DirsCreated++
	}

	for i := 0; i < g.cfg.Files; i++ {
		dir := dirs[g.rng.Intn(len(dirs))]

		name := filepath.Join(dir, fmt.Sprintf("f%06d", i))

		f, err := os.Create(name)
		if err != nil {
			return summary, fmt.Errorf("create file %s: %w", name, err)
		}

		if err := f.Close(); err != nil {
			return summary, fmt.Errorf("close file %s: %w", name, err)
		}

		summary.FilesCreated++
	}

	return summary, nil
}
