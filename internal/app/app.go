package app

import (
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/warekit/warestock/config"
	"github.com/warekit/warestock/internal/backup"
	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/warehouse"
)

type Application struct {
	appConfig     *config.AppConfig
	gormDB        *gorm.DB
	store         warehouse.Store
	service       *warehouse.Service
	bus           EventBus.Bus
	sched         *cron.Cron
	configManager *ConfigManager
	archive       *backup.Archive
}

// Ensure Application implements all interfaces
var (
	_ ServiceProvider   = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ SnapshotProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Store() warehouse.Store {
	return a.store
}

func (a *Application) Service() *warehouse.Service {
	return a.service
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// OverrideStore replaces the application's store (used in tests).
func (a *Application) OverrideStore(store warehouse.Store) {
	a.store = store
	a.service = warehouse.NewService(store, a.bus)
	a.configManager = NewConfigManager(store)
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize the store
	if cfg.Database.Type == "" {
		cfg.Database.Type = "memory"
	}
	switch cfg.Database.Type {
	case "postgres":
		a.gormDB = getDatabase(cfg.Database)
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
		a.store = warehouse.NewGormStore(a.gormDB)
		if err := a.MigrateDB(false); err != nil {
			zap.S().Errorf("database migration failed: %v", err)
		}
	default:
		a.store = warehouse.NewMemoryStore()
		zap.S().Info("running with in-memory store, snapshot persistence enabled")
	}

	a.bus = EventBus.New()
	a.service = warehouse.NewService(a.store, a.bus)
	a.configManager = NewConfigManager(a.store)
	a.archive = backup.NewArchive(filepath.Join(cfg.System.Workdir, "backup", "snapshots.db"))

	a.checkSettings()
	a.initEvents()
	a.initJob()
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if a.gormDB == nil {
		return nil
	}
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	if a.gormDB != nil {
		_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	}
}

func (a *Application) InitDb() {
	if a.gormDB == nil {
		_ = a.store.Reset(context.Background())
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// SaveSnapshot exports the full data set and stores it in the archive.
func (a *Application) SaveSnapshot(ctx context.Context) (string, error) {
	snap, err := backup.Export(ctx, a.store)
	if err != nil {
		return "", err
	}
	key, err := a.archive.Save(snap)
	if err != nil {
		return "", err
	}
	zap.L().Info("snapshot saved", zap.String("key", key),
		zap.Int("products", len(snap.Products)),
		zap.Int("clients", len(snap.Clients)),
		zap.Int("invoices", len(snap.Invoices)))
	a.bus.Publish(warehouse.TopicSnapshotSaved, key)
	return key, nil
}

// RestoreSnapshot loads the snapshot stored under key and replaces the
// current data set with it.
func (a *Application) RestoreSnapshot(ctx context.Context, key string) error {
	snap, err := a.archive.Load(key)
	if err != nil {
		return err
	}
	if err := backup.Restore(ctx, a.store, snap); err != nil {
		return err
	}
	zap.L().Info("snapshot restored", zap.String("key", key))
	return nil
}

// RestoreLatest restores the most recent archived snapshot. Returns false
// when the archive is empty.
func (a *Application) RestoreLatest(ctx context.Context) (bool, error) {
	snap, err := a.archive.LoadLatest()
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}
	return true, backup.Restore(ctx, a.store, snap)
}

// ListSnapshots returns the archive contents, oldest first.
func (a *Application) ListSnapshots() ([]backup.ArchiveEntry, error) {
	return a.archive.List()
}

// initEvents subscribes the audit trail to the warehouse event topics.
func (a *Application) initEvents() {
	_ = a.bus.Subscribe(warehouse.TopicInvoiceCreated, func(evt warehouse.InvoiceCreatedEvent) {
		a.appendOpLog("invoice.created",
			"invoice "+evt.Invoice.ID+" for client "+evt.Invoice.ClientID+
				" total "+evt.Invoice.Total.String()+" via "+evt.Source)
	})
	_ = a.bus.Subscribe(warehouse.TopicStockSupplied, func(evt warehouse.StockSuppliedEvent) {
		a.appendOpLog("stock.supplied", "product "+evt.ProductID)
	})
	_ = a.bus.Subscribe(warehouse.TopicSnapshotSaved, func(key string) {
		a.appendOpLog("snapshot.saved", "key "+key)
	})
}

func (a *Application) appendOpLog(action, desc string) {
	err := a.store.OpLogs().Append(context.Background(), &domain.SysOpLog{
		Actor:   a.appConfig.System.Appid,
		Action:  action,
		Desc:    desc,
		OptTime: time.Now(),
	})
	if err != nil {
		zap.L().Error("failed to append audit log", zap.String("action", action), zap.Error(err))
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = zap.L().Sync()
}
