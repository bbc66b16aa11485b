//go:build linux || darwin

package dump

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/xattrctl/xattrctl/internal/tlog"
	"github.com/xattrctl/xattrctl/xattr"
)

// Options control Walk, Collect and Restore.
type Options struct {
	// Recursive descends into directories. Symlinks below the starting
	// points are never followed.
	Recursive bool
	// NoDereference uses the L-variants, so symlinks are dumped and
	// restored themselves instead of their targets.
	NoDereference bool
	// Match is a name prefix. Attributes not starting with it are skipped.
	// Empty matches everything.
	Match string
	// Jobs is the number of files read in parallel. <= 0 means GOMAXPROCS.
	Jobs int
	// Excluder, if not nil, skips paths (relative to the starting point
	// they were found under) that match its gitignore-style patterns.
	Excluder *ignore.GitIgnore
}

// CompileExcludes builds an excluder from -exclude patterns and the lines
// of -exclude-from files. Returns nil if there are no patterns.
func CompileExcludes(patterns []string, fromFiles []string) (*ignore.GitIgnore, error) {
	lines := append([]string{}, patterns...)
	for _, file := range fromFiles {
		buf, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		lines = append(lines, strings.Split(string(buf), "\n")...)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}

// Walk expands the starting points into the list of paths to dump, in
// lexical order per starting point. Errors reading a directory abort
// the walk.
func Walk(roots []string, opts Options) ([]string, error) {
	var paths []string
	for _, root := range roots {
		if !opts.Recursive {
			paths = append(paths, root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && opts.Excluder != nil {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				if opts.Excluder.MatchesPath(rel) {
					tlog.Debug.Printf("Walk: excluding %q", path)
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// ReadEntry lists and reads the attributes of one file.
func ReadEntry(path string, opts Options) Entry {
	e := Entry{Path: path}
	list, get := xattr.List, xattr.Get
	if opts.NoDereference {
		list, get = xattr.LList, xattr.LGet
	}
	names, err := list(path)
	if err != nil {
		e.Err = err
		return e
	}
	for name := range names.All() {
		if !strings.HasPrefix(name, opts.Match) {
			continue
		}
		val, err := get(path, name)
		if errors.Is(err, xattr.ErrAttributeNotFound) {
			// Removed after we listed it
			continue
		}
		if err != nil {
			e.Err = err
			return e
		}
		e.Attrs = append(e.Attrs, Attr{Name: name, Value: val})
	}
	return e
}

// Collect reads the attributes of all `paths`, up to opts.Jobs files at a
// time. The result has one entry per path, in the same order. Per-file
// failures end up in Entry.Err; the returned error is only set if ctx was
// cancelled.
func Collect(ctx context.Context, paths []string, opts Options) ([]Entry, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	entries := make([]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = ReadEntry(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Restore sets all attributes in `entries`. It does not stop at the first
// failure; all errors are returned joined.
func Restore(entries []Entry, opts Options) error {
	set := xattr.Set
	if opts.NoDereference {
		set = xattr.LSet
	}
	var errs []error
	for _, e := range entries {
		for _, a := range e.Attrs {
			if !strings.HasPrefix(a.Name, opts.Match) {
				continue
			}
			err := set(e.Path, a.Name, a.Value)
			if err != nil {
				tlog.Debug.Printf("Restore: %v", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
