package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alerts.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("開啟資料庫失敗: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newRule(crop string, upper, lower int64) AlertRule {
	return AlertRule{
		CropName:   crop,
		UpperLimit: decimal.NewFromInt(upper),
		LowerLimit: decimal.NewFromInt(lower),
	}
}

func TestInsertAndListActive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertRule(ctx, newRule("番茄", 50, 10))
	if err != nil {
		t.Fatalf("新增規則失敗: %v", err)
	}
	if inserted.ID == 0 || !inserted.Active {
		t.Fatalf("新增結果不正確: %+v", inserted)
	}
	if inserted.NotifyVia != NotifySystem {
		t.Fatalf("通知方式應預設 system: %q", inserted.NotifyVia)
	}

	rules, err := store.ListActiveRules(ctx)
	if err != nil {
		t.Fatalf("查詢失敗: %v", err)
	}
	if len(rules) != 1 || rules[0].CropName != "番茄" {
		t.Fatalf("規則清單不正確: %+v", rules)
	}
	if !rules[0].UpperLimit.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("上限值不正確: %s", rules[0].UpperLimit)
	}
	if rules[0].LastTriggered != nil {
		t.Fatal("新規則不應有觸發時間")
	}
}

func TestInsertInvalidLimits(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.InsertRule(context.Background(), newRule("番茄", 10, 50)); !errors.Is(err, ErrInvalidLimits) {
		t.Fatalf("期望 ErrInvalidLimits, 實際 %v", err)
	}
	if _, err := store.InsertRule(context.Background(), newRule("番茄", 10, 10)); !errors.Is(err, ErrInvalidLimits) {
		t.Fatalf("上下限相等也應拒絕, 實際 %v", err)
	}
}

func TestDeactivateRule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertRule(ctx, newRule("番茄", 50, 10))
	if err != nil {
		t.Fatalf("新增規則失敗: %v", err)
	}

	if err := store.DeactivateRule(ctx, inserted.ID); err != nil {
		t.Fatalf("停用失敗: %v", err)
	}

	active, err := store.ListActiveRules(ctx)
	if err != nil {
		t.Fatalf("查詢失敗: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("停用後不應再列出: %+v", active)
	}

	all, err := store.ListRules(ctx)
	if err != nil {
		t.Fatalf("查詢失敗: %v", err)
	}
	if len(all) != 1 || all[0].Active {
		t.Fatalf("規則應保留但為停用狀態: %+v", all)
	}
}

func TestDeactivateMissingRule(t *testing.T) {
	store := newTestStore(t)
	if err := store.DeactivateRule(context.Background(), 999); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("期望 ErrRuleNotFound, 實際 %v", err)
	}
}

func TestMarkTriggered(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertRule(ctx, newRule("番茄", 50, 10))
	if err != nil {
		t.Fatalf("新增規則失敗: %v", err)
	}
	if err := store.MarkTriggered(ctx, inserted.ID); err != nil {
		t.Fatalf("記錄觸發時間失敗: %v", err)
	}

	rules, err := store.ListActiveRules(ctx)
	if err != nil {
		t.Fatalf("查詢失敗: %v", err)
	}
	if rules[0].LastTriggered == nil {
		t.Fatal("觸發時間應已寫入")
	}
}
