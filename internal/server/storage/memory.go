package storage

import (
	"context"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
)

// MemoryStore keeps directories in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	dirs map[string]models.Directory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{dirs: make(map[string]models.Directory)}
}

func key(scope, p string) string { return scope + "/" + p }

func (m *MemoryStore) CreateDirectory(_ context.Context, scope string, dir *models.Directory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(scope, dir.Path)
	if _, ok := m.dirs[k]; ok {
		return common.ErrAlreadyExists
	}
	if p := parent(dir.Path); p != "" {
		if _, ok := m.dirs[key(scope, p)]; !ok {
			return common.ErrorNotFound
		}
	}

	d := *dir
	d.SubDirectories = nil
	m.dirs[k] = d
	return nil
}

func (m *MemoryStore) GetDirectory(_ context.Context, scope, dirPath string) (*models.Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	k := key(scope, dirPath)
	d, ok := m.dirs[k]
	if !ok {
		return nil, common.ErrorNotFound
	}

	prefix := k + "/"
	for other := range m.dirs {
		rest, found := strings.CutPrefix(other, prefix)
		if found && !strings.Contains(rest, "/") {
			d.SubDirectories = append(d.SubDirectories, path.Base(other))
		}
	}
	slices.Sort(d.SubDirectories)
	return &d, nil
}

func (m *MemoryStore) DeleteDirectory(_ context.Context, scope, dirPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(scope, dirPath)
	if _, ok := m.dirs[k]; !ok {
		return common.ErrorNotFound
	}
	delete(m.dirs, k)

	prefix := k + "/"
	for other := range m.dirs {
		if strings.HasPrefix(other, prefix) {
			delete(m.dirs, other)
		}
	}
	return nil
}
