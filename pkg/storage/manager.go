package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shashiranjanraj/stockroom/config"
	"github.com/shashiranjanraj/stockroom/pkg/logger"
)

// Manager holds the configured disks by name.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

func NewManager(defaultDisk string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultDisk: defaultDisk}
}

// FromConfig always boots the "local" disk and adds "s3" when S3_BUCKET is
// set. A broken S3 configuration is logged and the disk left out.
func FromConfig(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDefault())

	local, err := NewLocal(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m.Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}
	return m, nil
}

func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disks[name] = d
}

// Disk returns the named disk. An empty name selects the default.
func (m *Manager) Disk(name string) (Disk, error) {
	if name == "" {
		name = m.defaultDisk
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Names lists the registered disks.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.disks))
	for n := range m.disks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
