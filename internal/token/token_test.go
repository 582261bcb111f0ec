package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.txt")
	m, err := NewManager(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("建立 token 管理器失敗: %v", err)
	}
	return m, path
}

func TestManagerCreatesFileOnFirstLoad(t *testing.T) {
	_, path := newTestManager(t)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("token 檔案應自動建立: %v", err)
	}
}

func TestAddAndVerify(t *testing.T) {
	m, path := newTestManager(t)

	if err := m.Add("abc123", "小明"); err != nil {
		t.Fatalf("新增失敗: %v", err)
	}
	if !m.Verify("abc123") {
		t.Fatal("token 驗證應通過")
	}
	if m.Verify("unknown") {
		t.Fatal("未註冊的 token 不應通過")
	}
	if got := m.UserName("abc123"); got != "小明" {
		t.Fatalf("使用者名稱不正確: %q", got)
	}

	// 重新載入確認已持久化
	reloaded, err := NewManager(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("重新載入失敗: %v", err)
	}
	if !reloaded.Verify("abc123") {
		t.Fatal("重新載入後 token 應仍存在")
	}
}

func TestAddEmptyToken(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Add("", "小明"); err == nil {
		t.Fatal("空 token 應被拒絕")
	}
}

func TestRemove(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Add("abc123", "小明"); err != nil {
		t.Fatalf("新增失敗: %v", err)
	}
	if err := m.Remove("abc123"); err != nil {
		t.Fatalf("移除失敗: %v", err)
	}
	if m.Verify("abc123") {
		t.Fatal("移除後不應通過驗證")
	}
	if err := m.Remove("abc123"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("期望 ErrTokenNotFound, 實際 %v", err)
	}
}

func TestListOrder(t *testing.T) {
	m, _ := newTestManager(t)

	for _, tok := range []string{"c", "a", "b"} {
		if err := m.Add(tok, "user-"+tok); err != nil {
			t.Fatalf("新增失敗: %v", err)
		}
	}

	entries := m.List()
	if len(entries) != 3 {
		t.Fatalf("token 數量不正確: %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.CreatedAt.Before(prev.CreatedAt) {
			t.Fatalf("排序不正確: %+v", entries)
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.Token < prev.Token {
			t.Fatalf("同時間應依 token 排序: %+v", entries)
		}
	}
}
