package app

import (
	"context"
	"sync"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/warekit/warestock/internal/warehouse"
)

// ConfigManager reads runtime settings through the store with a small
// write-through cache. Values are stored as strings and converted on read.
type ConfigManager struct {
	store warehouse.Store
	mu    sync.RWMutex
	cache map[string]string
}

func NewConfigManager(store warehouse.Store) *ConfigManager {
	return &ConfigManager{
		store: store,
		cache: make(map[string]string),
	}
}

func settingKey(category, name string) string {
	return category + "." + name
}

func (m *ConfigManager) GetString(category, name string) string {
	key := settingKey(category, name)

	m.mu.RLock()
	if val, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return val
	}
	m.mu.RUnlock()

	val, err := m.store.Settings().Get(context.Background(), category, name)
	if err != nil {
		return ""
	}

	m.mu.Lock()
	m.cache[key] = val
	m.mu.Unlock()
	return val
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.GetString(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

func (m *ConfigManager) Set(category, name, value string) error {
	if err := m.store.Settings().Set(context.Background(), category, name, value); err != nil {
		zap.L().Error("failed to save setting",
			zap.String("key", settingKey(category, name)), zap.Error(err))
		return err
	}
	m.mu.Lock()
	m.cache[settingKey(category, name)] = value
	m.mu.Unlock()
	return nil
}
