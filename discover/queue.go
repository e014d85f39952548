// Package discover: directory queue for the breadth-first walk.
// Directories are keyed by their symlink-resolved path, so a link back up
// the tree or two links to one directory are walked once.
package discover

import "path/filepath"

// Queue is a FIFO of directories still to list.
type Queue struct {
	dirs    []string
	visited map[string]bool // resolved path
	idx     int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues dir unless the directory it resolves to was already queued.
// It reports whether dir was added.
func (q *Queue) Add(dir string) bool {
	key := resolve(dir)
	if q.visited[key] {
		return false
	}
	q.visited[key] = true
	q.dirs = append(q.dirs, dir)
	return true
}

// HasNext reports whether any queued directory is still unlisted.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.dirs)
}

// Next returns the next directory to list.
func (q *Queue) Next() string {
	dir := q.dirs[q.idx]
	q.idx++
	return dir
}

func resolve(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return NormalizePath(path)
	}
	return NormalizePath(resolved)
}
