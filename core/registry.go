package core

import "fmt"

// Registry is the single owner of all open buffers, keyed by file path.
// UI panels hold only the path and look the buffer up on demand, so two
// panels showing the same file always see the same instance.
type Registry struct {
	buffers      map[string]Buffer
	newClipboard func() Clipboard
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClipboardFactory makes newly opened buffers use clipboards produced
// by factory instead of the in-memory default.
func WithClipboardFactory(factory func() Clipboard) RegistryOption {
	return func(r *Registry) { r.newClipboard = factory }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		buffers:      make(map[string]Buffer),
		newClipboard: NewMemoryClipboard,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open loads the file at path into a new buffer and registers it. If the
// path is already open the existing buffer is returned. A load failure
// registers nothing.
func (r *Registry) Open(path string) (Buffer, error) {
	if b, ok := r.buffers[path]; ok {
		return b, nil
	}
	b := NewBuffer(r.newClipboard())
	if err := b.Load(path); err != nil {
		return nil, err
	}
	r.buffers[path] = b
	return b, nil
}

// Get returns the buffer for path, if open.
func (r *Registry) Get(path string) (Buffer, bool) {
	b, ok := r.buffers[path]
	return b, ok
}

// Buffer returns the buffer for path, or ErrBufferNotOpen. For callers
// that treat a missing buffer as a failure rather than a branch.
func (r *Registry) Buffer(path string) (Buffer, error) {
	b, ok := r.buffers[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBufferNotOpen, path)
	}
	return b, nil
}

// Close drops the buffer for path. Closing an unopened path is a no-op.
func (r *Registry) Close(path string) {
	delete(r.buffers, path)
}

// Paths lists the open file paths.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.buffers))
	for p := range r.buffers {
		paths = append(paths, p)
	}
	return paths
}

// Len returns the number of open buffers.
func (r *Registry) Len() int {
	return len(r.buffers)
}
