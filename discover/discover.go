// Package discover collects filesystem paths under a directory tree,
// bounded by a wall-clock time budget.
package discover

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/karrick/godirwalk"
	"golang.org/x/sys/unix"
)

// Discover walks the tree rooted at root and returns every path it
// visits before budget elapses, files and directories alike. Symlinks
// are resolved for root itself but not followed deeper in the tree, and
// directories on a different filesystem than root are skipped. The walk
// is cut off at the deadline; whatever was collected by then is the
// result. Per-entry read errors are skipped silently. An error is
// returned only when root is unusable or budget is non-positive.
func Discover(ctx context.Context, root string, budget time.Duration) ([]string, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("discovery budget must be positive, got %s", budget)
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve target %s: %w", root, err)
	}

	var st unix.Stat_t
	if err := unix.Stat(resolved, &st); err != nil {
		return nil, fmt.Errorf("stat target %s: %w", resolved, err)
	}

	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return nil, fmt.Errorf("target %s is not a directory", resolved)
	}

	rootDev := uint64(st.Dev)

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pathc := make(chan string, 256)

	go func() {
		defer close(pathc)

		// Halting on a cancelled context makes Walk return early;
		// the error itself is irrelevant, partial output is kept.
		_ = godirwalk.Walk(resolved, &godirwalk.Options{
			Unsorted: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() && path != resolved && !sameDevice(path, rootDev) {
					return filepath.SkipDir
				}

				select {
				case pathc <- path:
					return nil
				case <-walkCtx.Done():
					return walkCtx.Err()
				}
			},
			ErrorCallback: func(string, error) godirwalk.ErrorAction {
				if walkCtx.Err() != nil {
					return godirwalk.Halt
				}

				return godirwalk.SkipNode
			},
		})
	}()

	deadline := time.NewTimer(budget)
	defer deadline.Stop()

	var paths []string

	for {
		select {
		case path, ok := <-pathc:
			if !ok {
				return paths, nil
			}

			paths = append(paths, path)

		case <-deadline.C:
			cancel()

			return paths, nil
		}
	}
}

// sameDevice reports whether path lives on the filesystem identified by
// dev. Unreadable paths count as same-device; the walk's own error
// handling decides what happens to them.
func sameDevice(path string, dev uint64) bool {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return true
	}

	return uint64(st.Dev) == dev
}
