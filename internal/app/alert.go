package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"agriwatch/internal/alerting"
	"agriwatch/internal/storage"
)

// AlertAddOptions configure a new price alert rule.
type AlertAddOptions struct {
	Crop       string
	UpperLimit float64
	LowerLimit float64
	NotifyVia  string
}

// AlertAdd persists a new alert rule.
func (a *App) AlertAdd(ctx context.Context, opts AlertAddOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rule, err := store.InsertRule(ctx, storage.AlertRule{
		CropName:   opts.Crop,
		UpperLimit: decimal.NewFromFloat(opts.UpperLimit),
		LowerLimit: decimal.NewFromFloat(opts.LowerLimit),
		NotifyVia:  opts.NotifyVia,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "已新增預警規則 #%d (%s: %s ~ %s)\n",
		rule.ID, rule.CropName, rule.LowerLimit.StringFixed(2), rule.UpperLimit.StringFixed(2))
	return nil
}

// AlertList prints every stored rule.
func (a *App) AlertList(ctx context.Context) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rules, err := store.ListRules(ctx)
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Fprintln(os.Stdout, "尚無預警規則")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\t作物\t下限\t上限\t通知\t狀態\t最近觸發")
	for _, r := range rules {
		status := "啟用"
		if !r.Active {
			status = "停用"
		}
		triggered := "-"
		if r.LastTriggered != nil {
			triggered = r.LastTriggered.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CropName, r.LowerLimit.StringFixed(2), r.UpperLimit.StringFixed(2),
			r.NotifyVia, status, triggered)
	}
	return writer.Flush()
}

// AlertDeactivate flips a rule inactive.
func (a *App) AlertDeactivate(ctx context.Context, id int64) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.DeactivateRule(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "已停用預警規則 #%d\n", id)
	return nil
}

// AlertCheck downloads fresh data and evaluates every active rule once.
func (a *App) AlertCheck(ctx context.Context) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	analyzer, err := a.loadAnalyzer(ctx, "")
	if err != nil {
		return err
	}

	checker := alerting.NewChecker(store, a.newNotifier(), a.Logger)
	fired, err := checker.Check(ctx, analyzer)
	if err != nil {
		return err
	}
	if len(fired) == 0 {
		fmt.Fprintln(os.Stdout, "所有規則皆在區間內")
		return nil
	}
	for _, note := range fired {
		fmt.Fprintf(os.Stdout, "[%s] %s: %s\n",
			note.PriceDate.Format("2006-01-02"), note.Title(), note.Message())
	}
	return nil
}
