package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	insertRuleSQL = `INSERT INTO alert_rules (
        crop_name,
        upper_limit,
        lower_limit,
        notify_via,
        active,
        created_at
    ) VALUES (?, ?, ?, ?, 1, ?);`

	listRulesSQL = `SELECT
        id,
        crop_name,
        upper_limit,
        lower_limit,
        notify_via,
        active,
        created_at,
        last_triggered
    FROM alert_rules`

	listActiveRulesSQL = listRulesSQL + `
    WHERE active = 1
    ORDER BY id;`

	listAllRulesSQL = listRulesSQL + `
    ORDER BY id;`

	deactivateRuleSQL = `UPDATE alert_rules SET active = 0 WHERE id = ?;`

	markTriggeredSQL = `UPDATE alert_rules SET last_triggered = ? WHERE id = ?;`
)

// InsertRule persists a new active alert rule after validating its limits.
func (s *Store) InsertRule(ctx context.Context, rule AlertRule) (AlertRule, error) {
	db, err := s.getDB()
	if err != nil {
		return AlertRule{}, err
	}
	if rule.CropName == "" {
		return AlertRule{}, errors.New("storage: crop name is required")
	}
	if !rule.UpperLimit.GreaterThan(rule.LowerLimit) {
		return AlertRule{}, ErrInvalidLimits
	}
	if rule.NotifyVia == "" {
		rule.NotifyVia = NotifySystem
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	res, err := db.ExecContext(ctx, insertRuleSQL,
		rule.CropName,
		rule.UpperLimit.String(),
		rule.LowerLimit.String(),
		rule.NotifyVia,
		rule.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return AlertRule{}, fmt.Errorf("insert alert rule: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return AlertRule{}, fmt.Errorf("insert alert rule id: %w", err)
	}
	rule.ID = id
	rule.Active = true
	return rule, nil
}

// ListActiveRules lists active rules ordered by id.
func (s *Store) ListActiveRules(ctx context.Context) ([]AlertRule, error) {
	return s.listRules(ctx, listActiveRulesSQL)
}

// ListRules lists every rule, active or not, ordered by id.
func (s *Store) ListRules(ctx context.Context) ([]AlertRule, error) {
	return s.listRules(ctx, listAllRulesSQL)
}

func (s *Store) listRules(ctx context.Context, query string) ([]AlertRule, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alert rules: %w", err)
	}
	defer rows.Close()

	rules := make([]AlertRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return rules, nil
}

// DeactivateRule flips a rule inactive. Rules are never deleted, so the
// audit trail of past alerts stays intact.
func (s *Store) DeactivateRule(ctx context.Context, id int64) error {
	return s.execOnRule(ctx, deactivateRuleSQL, id)
}

// MarkTriggered records the trigger timestamp on a rule.
func (s *Store) MarkTriggered(ctx context.Context, id int64) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, markTriggeredSQL, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark rule triggered: %w", err)
	}
	return checkAffected(res)
}

func (s *Store) execOnRule(ctx context.Context, query string, id int64) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update alert rule: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func scanRule(rows *sql.Rows) (AlertRule, error) {
	var (
		rule      AlertRule
		upper     string
		lower     string
		active    int
		createdAt string
		triggered sql.NullString
	)

	if err := rows.Scan(
		&rule.ID,
		&rule.CropName,
		&upper,
		&lower,
		&rule.NotifyVia,
		&active,
		&createdAt,
		&triggered,
	); err != nil {
		return AlertRule{}, err
	}

	var err error
	rule.UpperLimit, err = decimal.NewFromString(upper)
	if err != nil {
		return AlertRule{}, fmt.Errorf("parse upper limit: %w", err)
	}
	rule.LowerLimit, err = decimal.NewFromString(lower)
	if err != nil {
		return AlertRule{}, fmt.Errorf("parse lower limit: %w", err)
	}
	rule.Active = active != 0

	rule.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return AlertRule{}, fmt.Errorf("parse created_at: %w", err)
	}
	if triggered.Valid && triggered.String != "" {
		ts, err := time.Parse(time.RFC3339, triggered.String)
		if err != nil {
			return AlertRule{}, fmt.Errorf("parse last_triggered: %w", err)
		}
		rule.LastTriggered = &ts
	}
	return rule, nil
}

var _ AlertRuleStore = (*Store)(nil)
