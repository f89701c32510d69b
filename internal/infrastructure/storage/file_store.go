// Package storage implements the durable key-value store backing profiles and
// persisted UI settings: a single YAML document on disk, rewritten atomically
// on every Set and optionally watched for external edits.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const debounceDelay = 350 * time.Millisecond

// FileStore is a domain.KVStore persisted as a top-level YAML mapping.
type FileStore struct {
	mu          sync.RWMutex
	path        string
	entries     map[string]*yaml.Node
	lastWritten []byte
	watcher     *fsnotify.Watcher
}

// NewFileStore creates a store for path. Call Load before use.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:    path,
		entries: make(map[string]*yaml.Node),
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the backing file. A missing or empty file yields an empty store.
func (s *FileStore) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			s.entries = make(map[string]*yaml.Node)
			s.mu.Unlock()
			return nil
		}
		return err
	}
	entries, err := parseDocument(b)
	if err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.mu.Lock()
	s.entries = entries
	s.lastWritten = b
	s.mu.Unlock()
	return nil
}

// Get decodes the value stored under key into out.
func (s *FileStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	node, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := node.Decode(out); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Set encodes value under key and rewrites the whole document.
func (s *FileStore) Set(key string, value any) error {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]*yaml.Node, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[key] = &node

	b, err := renderDocument(next)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, b); err != nil {
		return err
	}
	s.entries = next
	s.lastWritten = b
	return nil
}

// Watch sets a fsnotify watcher on the file and calls onChange after an
// external edit has been reloaded. Writes made by this store are ignored.
func (s *FileStore) Watch(onChange func()) error {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	reload := func() {
		b, err := os.ReadFile(abs)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				utils.Logger.Warn("state file unreadable", "path", abs, "err", err)
			}
			return
		}
		s.mu.RLock()
		unchanged := bytes.Equal(b, s.lastWritten)
		s.mu.RUnlock()
		if unchanged {
			return
		}

		utils.Logger.Info("state file changed", "path", abs)
		if err := s.Load(); err != nil {
			utils.Logger.Error("failed to reload state file", "path", abs, "err", err)
			return
		}
		if onChange != nil {
			onChange()
		}
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.AfterFunc(debounceDelay, reload)
				} else {
					timer.Reset(debounceDelay)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				utils.Logger.Warn("fsnotify error", "err", err)
			}
		}
	}()

	return nil
}

// Close stops the watcher, if any.
func (s *FileStore) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}

func parseDocument(b []byte) (map[string]*yaml.Node, error) {
	entries := make(map[string]*yaml.Node)
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return entries, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return entries, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping at the document root, got kind %d", root.Kind)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		entries[root.Content[i].Value] = root.Content[i+1]
	}
	return entries, nil
}

func renderDocument(entries map[string]*yaml.Node) ([]byte, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			entries[k],
		)
	}

	var buf bytes.Buffer
	buf.WriteString("# kafkalens state\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".kafkalens-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
