package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"agriwatch/internal/alerting"
	"agriwatch/internal/scheduler"
)

// Watch runs the long-lived monitoring loop: on every scheduler tick it
// downloads fresh data and evaluates the active alert rules.
func (a *App) Watch(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToStart,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	checker := alerting.NewChecker(store, a.newNotifier(), a.Logger)

	a.Logger.Info().Dur("interval", a.Config.Scheduler.Interval).Msg("監控服務啟動")

	err = sched.Run(ctx, func(tickCtx context.Context, bucket time.Time) error {
		analyzer, err := a.loadAnalyzer(tickCtx, "")
		if err != nil {
			return err
		}
		fired, err := checker.Check(tickCtx, analyzer)
		if err != nil {
			return err
		}
		a.Logger.Info().Time("bucket", bucket).Int("fired", len(fired)).Msg("預警檢查完成")
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("監控服務異常終止")
		return err
	}

	a.Logger.Info().Msg("監控服務已停止")
	return nil
}
