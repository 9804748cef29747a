package app

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/warekit/warestock/config"
	"github.com/warekit/warestock/internal/backup"
	"github.com/warekit/warestock/internal/warehouse"
)

// ServiceProvider provides warehouse service access
type ServiceProvider interface {
	Service() *warehouse.Service
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// SnapshotProvider provides snapshot save/restore capability
type SnapshotProvider interface {
	SaveSnapshot(ctx context.Context) (string, error)
	RestoreSnapshot(ctx context.Context, key string) error
	ListSnapshots() ([]backup.ArchiveEntry, error)
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ServiceProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	SnapshotProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
