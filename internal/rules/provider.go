package rules

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"caseflow/internal"
)

// Provider hands out the current rule engine and hot-swaps it when the
// backing config file changes. A reload that fails validation keeps the
// previous engine in place.
type Provider struct {
	mu      sync.RWMutex
	engine  *Engine
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	logger  *internal.Logger
}

// NewProvider loads the initial engine from path, or the embedded defaults
// when path is empty. With watch enabled the file is monitored for changes.
func NewProvider(path string, watch bool, logger *internal.Logger) (*Provider, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	var engine *Engine
	var err error
	if path == "" {
		engine, err = DefaultEngine()
	} else {
		engine, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	p := &Provider{engine: engine, path: path, logger: logger}
	if watch && path != "" {
		if err := p.startWatcher(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Engine returns the current engine. The returned value is immutable.
func (p *Provider) Engine() *Engine {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.engine
}

// Close stops the file watcher if one is running.
func (p *Provider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.done)
	return p.watcher.Close()
}

func (p *Provider) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return err
	}
	p.watcher = watcher
	p.done = make(chan struct{})

	go p.watchLoop()
	p.logger.Info("[Rules] watching %s for changes", p.path)
	return nil
}

func (p *Provider) watchLoop() {
	target := filepath.Clean(p.path)
	for {
		select {
		case <-p.done:
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("[Rules] watcher error: %v", err)
		}
	}
}

func (p *Provider) reload() {
	engine, err := LoadFile(p.path)
	if err != nil {
		p.logger.Error("[Rules] reload rejected, keeping previous rule set: %v", err)
		return
	}
	p.mu.Lock()
	p.engine = engine
	p.mu.Unlock()
	p.logger.Info("[Rules] reloaded rule set version %s from %s", engine.Version(), p.path)
}
