package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pagekit-dev/pagekit/internal/domain/blockconfig"
)

// memFS is an in-memory ports.FileSystem keyed by cleaned paths.
type memFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	reads int
}

func newMemFS(files map[string]string) *memFS {
	m := &memFS{files: make(map[string][]byte)}
	for p, content := range files {
		m.files[filepath.Clean(p)] = []byte(content)
	}
	return m
}

func (m *memFS) write(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = []byte(content)
}

func (m *memFS) remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filepath.Clean(path))
}

func (m *memFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memFS) ListDirs(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := filepath.Clean(dir) + string(filepath.Separator)
	seen := map[string]bool{}
	for p := range m.files {
		rest, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		if i := strings.IndexRune(rest, filepath.Separator); i > 0 {
			seen[rest[:i]] = true
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("open %s: %w", dir, fs.ErrNotExist)
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// memLoader returns canned configs per block folder.
type memLoader struct {
	configs map[string]map[string]any
	errs    map[string]error
	calls   int
	mu      sync.Mutex
}

func (l *memLoader) Load(folder string) (*blockconfig.Tree, string, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	folder = filepath.Clean(folder)
	file := filepath.Join(folder, "config.json")
	if err, ok := l.errs[folder]; ok {
		return nil, file, err
	}
	cfg, ok := l.configs[folder]
	if !ok {
		return blockconfig.Empty(), "", nil
	}
	tree, err := blockconfig.FromMap(cfg)
	return tree, file, err
}

type fakeTheme struct {
	root string
}

func (t fakeTheme) RootFolder() string {
	return t.root
}

func (t fakeTheme) ResolvePublicAssetURL(rel string) string {
	return "https://cdn.example.com/themes/demo/" + rel
}

// scriptedWatcher replays edits synchronously instead of watching the disk.
type scriptedWatcher struct {
	edits []func() string
	dir   string
	names []string
}

func (w *scriptedWatcher) Watch(_ context.Context, dir string, names []string, onChange func(string)) error {
	w.dir = dir
	w.names = names
	for _, edit := range w.edits {
		onChange(edit())
	}
	return nil
}
