package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/warekit/warestock/internal/domain"
)

type settingSchema struct {
	Category    string
	Name        string
	Default     string
	Description string
}

var settingSchemas = []settingSchema{
	{"backup", "auto_enable", "true", "Take a daily snapshot of the full data set"},
	{"backup", "keep", "30", "Number of archived snapshots to report before warning"},
	{"system", "oplog_retain_days", "365", "Days to keep audit log rows"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	ctx := context.Background()
	for _, schema := range settingSchemas {
		_, err := a.store.Settings().Get(ctx, schema.Category, schema.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrEntryNotFound) {
			zap.L().Error("failed to query setting",
				zap.String("key", schema.Category+"."+schema.Name), zap.Error(err))
			continue
		}
		if err := a.store.Settings().Set(ctx, schema.Category, schema.Name, schema.Default); err != nil {
			zap.L().Error("failed to initialize setting",
				zap.String("key", schema.Category+"."+schema.Name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized setting",
			zap.String("key", schema.Category+"."+schema.Name),
			zap.String("default", schema.Default))
	}
}
