package catalog

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/smallnest/goalgraph/agentic"
	"github.com/smallnest/goalgraph/log"
)

// Loader keeps the latest valid catalog read from a file, together with the
// workflow built from it, and can reload both when the file changes.
type Loader struct {
	path   string
	goal   string
	opts   []agentic.Option
	logger log.Logger

	mu       sync.RWMutex
	current  *Catalog
	workflow *agentic.Workflow
	onChange []func(*Catalog)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for reloads and by every workflow built.
// The package-level logger is used otherwise.
func WithLogger(logger log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithWorkflowOptions passes opts to every workflow built from the catalog.
func WithWorkflowOptions(opts ...agentic.Option) LoaderOption {
	return func(l *Loader) {
		l.opts = append(l.opts, opts...)
	}
}

// NewLoader creates a Loader and performs the initial load. goal overrides
// the catalog goal when not empty.
func NewLoader(path, goal string, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{
		path: path,
		goal: goal,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.GetDefaultLogger()
	}

	c, w, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = c
	l.workflow = w
	return l, nil
}

// Catalog returns the current catalog
func (l *Loader) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Workflow returns the workflow built from the current catalog. Runs already
// started on an older workflow finish on it.
func (l *Loader) Workflow() *agentic.Workflow {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.workflow
}

// OnChange registers a callback invoked whenever the catalog reloads.
func (l *Loader) OnChange(fn func(*Catalog)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that reloads the catalog on file
// changes. Invalid versions are logged and the previous catalog is kept.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog watcher: %w", err)
	}
	// editors often replace the file, so watch its directory
	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("catalog watcher add %s: %w", dir, err)
	}
	target := filepath.Clean(l.path)

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if _, err := l.Reload(); err != nil {
						l.logger.Warn("catalog reload failed, keeping previous version: %v", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("catalog watcher: %v", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload forces an immediate re-read of the catalog file.
func (l *Loader) Reload() (*Catalog, error) {
	c, w, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = c
	l.workflow = w
	callbacks := make([]func(*Catalog), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	l.logger.Info("catalog %s reloaded with %d agents", l.path, len(c.Agents))
	for _, fn := range callbacks {
		fn(c)
	}
	return c, nil
}

func (l *Loader) load() (*Catalog, *agentic.Workflow, error) {
	c, err := Load(l.path)
	if err != nil {
		return nil, nil, err
	}
	opts := append([]agentic.Option{agentic.WithLogger(l.logger)}, l.opts...)
	w, err := c.Workflow(l.goal, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog %s: %w", l.path, err)
	}
	return c, w, nil
}
