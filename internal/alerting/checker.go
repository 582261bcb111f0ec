package alerting

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"agriwatch/internal/analysis"
	"agriwatch/internal/storage"
)

// PriceSource yields the most recent daily mean price for a crop.
type PriceSource interface {
	LatestDailyMean(crop string) (price float64, date time.Time, err error)
}

// Checker evaluates active alert rules against current prices and routes
// triggered alerts to the configured notifier.
type Checker struct {
	store    storage.AlertRuleStore
	notifier Notifier
	logger   zerolog.Logger
}

// NewChecker constructs a rule checker.
func NewChecker(store storage.AlertRuleStore, notifier Notifier, logger zerolog.Logger) *Checker {
	return &Checker{
		store:    store,
		notifier: notifier,
		logger:   logger.With().Str("component", "alert_checker").Logger(),
	}
}

// Check 比對所有啟用中的規則, 回傳觸發的預警。
// Rules whose crop has no data are skipped, not treated as errors.
func (c *Checker) Check(ctx context.Context, prices PriceSource) ([]Notification, error) {
	rules, err := c.store.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	var fired []Notification
	for _, rule := range rules {
		price, date, err := prices.LatestDailyMean(rule.CropName)
		if errors.Is(err, analysis.ErrNoData) {
			c.logger.Debug().Str("crop", rule.CropName).Msg("無價格資料, 略過規則")
			continue
		}
		if err != nil {
			return fired, err
		}

		note, ok := evaluate(rule, price, date)
		if !ok {
			continue
		}

		if err := c.notifier.Notify(ctx, note); err != nil {
			c.logger.Error().Err(err).Int64("rule_id", rule.ID).Msg("預警發送失敗")
			continue
		}
		if err := c.store.MarkTriggered(ctx, rule.ID); err != nil {
			c.logger.Error().Err(err).Int64("rule_id", rule.ID).Msg("記錄觸發時間失敗")
		}
		fired = append(fired, note)
	}
	return fired, nil
}

func evaluate(rule storage.AlertRule, price float64, date time.Time) (Notification, bool) {
	current := decimal.NewFromFloat(price)
	note := Notification{
		RuleID:       rule.ID,
		CropName:     rule.CropName,
		CurrentPrice: current,
		PriceDate:    date,
	}

	switch {
	case current.GreaterThan(rule.UpperLimit):
		note.Limit = rule.UpperLimit
		note.Direction = DirectionAbove
		return note, true
	case current.LessThan(rule.LowerLimit):
		note.Limit = rule.LowerLimit
		note.Direction = DirectionBelow
		return note, true
	}
	return Notification{}, false
}
