// Package vfs provides the in-memory virtual filesystem adapter. The machine
// has no real disk: files live in a map of absolute paths and reset with the
// process unless a host snapshots them.
package vfs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/retroshell/internal/ports"
)

var (
	ErrNotFound    = errors.New("No such file or directory")
	ErrIsDirectory = errors.New("Is a directory")
	ErrNotEmpty    = errors.New("Directory not empty")
)

type node struct {
	dir     bool
	content string
	modTime time.Time
}

// MemFS is a mutex-guarded map of absolute virtual paths.
type MemFS struct {
	mu    sync.RWMutex
	nodes map[string]node
}

// NewMemFS builds a filesystem seeded with the machine's default layout.
func NewMemFS() *MemFS {
	fs := &MemFS{nodes: map[string]node{}}
	now := time.Now()

	fs.nodes["/"] = node{dir: true, modTime: now}
	fs.mkdirAll("/home/user/programs", now)
	fs.mkdirAll("/tmp", now)
	fs.mkdirAll("/etc", now)

	fs.nodes["/home/user/readme.txt"] = node{
		content: "Welcome to the machine.\nType 'help' for the command reference.\n",
		modTime: now,
	}
	fs.nodes["/home/user/programs/hello.bas"] = node{
		content: "10 PRINT \"HELLO, WORLD\"\n20 END\n",
		modTime: now,
	}
	fs.nodes["/etc/motd"] = node{
		content: "All files here are virtual. Nothing you break is real.\n",
		modTime: now,
	}
	return fs
}

// Read returns a file's content.
func (fs *MemFS) Read(_ context.Context, path string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, ok := fs.nodes[clean(path)]
	if !ok {
		return "", ErrNotFound
	}
	if n.dir {
		return "", ErrIsDirectory
	}
	return n.content, nil
}

// Write creates or replaces a file, creating parent directories as needed.
func (fs *MemFS) Write(_ context.Context, path, content string) (string, error) {
	path = clean(path)
	if path == "/" {
		return "", ErrIsDirectory
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if n, ok := fs.nodes[path]; ok && n.dir {
		return "", ErrIsDirectory
	}
	now := time.Now()
	fs.mkdirAll(parent(path), now)
	fs.nodes[path] = node{content: content, modTime: now}
	return fmt.Sprintf("Wrote %s (%s)", path, humanize.IBytes(uint64(len(content)))), nil
}

// List renders an ls-style listing: directories first, then files with
// humanized sizes, sorted by name.
func (fs *MemFS) List(_ context.Context, path string) (string, error) {
	path = clean(path)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, ok := fs.nodes[path]
	if !ok {
		return "", ErrNotFound
	}
	if !n.dir {
		return fmt.Sprintf("%-24s %8s", base(path), humanize.IBytes(uint64(len(n.content)))), nil
	}

	var dirs, files []string
	for p, child := range fs.nodes {
		if parent(p) != path || p == path {
			continue
		}
		if child.dir {
			dirs = append(dirs, fmt.Sprintf("%-24s    <dir>", base(p)+"/"))
		} else {
			files = append(files, fmt.Sprintf("%-24s %8s", base(p), humanize.IBytes(uint64(len(child.content)))))
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	lines := append(dirs, files...)
	if len(lines) == 0 {
		return "(empty)", nil
	}
	return strings.Join(lines, "\n"), nil
}

// Delete removes a file or an empty directory.
func (fs *MemFS) Delete(_ context.Context, path string) (string, error) {
	path = clean(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, ok := fs.nodes[path]
	if !ok {
		return "", ErrNotFound
	}
	if n.dir {
		for p := range fs.nodes {
			if parent(p) == path && p != path {
				return "", ErrNotEmpty
			}
		}
	}
	delete(fs.nodes, path)
	return fmt.Sprintf("Removed %s", path), nil
}

// Search returns all paths matching a doublestar glob pattern, sorted.
func (fs *MemFS) Search(_ context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var matches []string
	for p, n := range fs.nodes {
		if n.dir {
			continue
		}
		// Patterns without a slash match against the base name, so a bare
		// "*.bas" finds programs anywhere in the tree.
		target := p
		if !strings.Contains(pattern, "/") {
			target = base(p)
		}
		if ok, _ := doublestar.Match(pattern, target); ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// mkdirAll creates the directory chain for an absolute path. Callers hold the
// write lock (or run before the filesystem is shared).
func (fs *MemFS) mkdirAll(path string, now time.Time) {
	path = clean(path)
	for path != "/" {
		if n, ok := fs.nodes[path]; !ok || !n.dir {
			fs.nodes[path] = node{dir: true, modTime: now}
		}
		path = parent(path)
	}
}

func clean(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func parent(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

func base(path string) string {
	idx := strings.LastIndex(path, "/")
	return path[idx+1:]
}

var _ ports.Filesystem = (*MemFS)(nil)
