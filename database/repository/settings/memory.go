package settingsRepo

import (
	"context"
	"sync"
)

type memorySettingsRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySettingsRepo constructs an in-memory SettingsRepository.
func NewMemorySettingsRepo() SettingsRepository {
	return &memorySettingsRepo{values: make(map[string]string)}
}

func (r *memorySettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.values[key]
	return value, ok, nil
}

func (r *memorySettingsRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memorySettingsRepo) All(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}
