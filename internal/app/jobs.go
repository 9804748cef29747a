package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedAutoSnapshotTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearExpireData()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedAutoSnapshotTask takes the daily snapshot when backup.auto_enable
// is set.
func (a *Application) SchedAutoSnapshotTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	if !a.configManager.GetBool("backup", "auto_enable") {
		return
	}
	key, err := a.SaveSnapshot(context.Background())
	if err != nil {
		zap.L().Error("auto snapshot failed", zap.Error(err))
		return
	}

	keep := a.configManager.GetInt("backup", "keep")
	if keep > 0 {
		if entries, err := a.archive.List(); err == nil && len(entries) > keep {
			zap.L().Warn("snapshot archive is growing",
				zap.Int("count", len(entries)), zap.Int("keep", keep),
				zap.String("latest", key))
		}
	}
}

// SchedClearExpireData prunes audit log rows past the retention window.
func (a *Application) SchedClearExpireData() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	idays := a.configManager.GetInt("system", "oplog_retain_days")
	if idays == 0 {
		idays = 365
	}
	cutoff := time.Now().Add(-time.Hour * 24 * time.Duration(idays))
	if err := a.store.OpLogs().DeleteBefore(context.Background(), cutoff); err != nil {
		zap.L().Error("failed to prune audit log", zap.Error(err))
	}
}
