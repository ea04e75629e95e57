package ports

// Watcher monitors a single file for changes and triggers a reload.
// Editors often replace files on save (write to temp + rename), so the adapter
// must keep following the path, not the inode.
type Watcher interface {
	// Watch starts monitoring path. onChange is called with the path after
	// each settled change. The callback may be invoked from any goroutine.
	// Returns an error if the parent directory doesn't exist.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
