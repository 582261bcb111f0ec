// Package token manages the premium access token file. Tokens gate the
// chat assistant and Excel export features.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const timeLayout = "2006-01-02 15:04:05"

// ErrTokenNotFound indicates the token is not registered.
var ErrTokenNotFound = errors.New("token: 查無此 token")

// Entry 描述一筆已註冊的 token。
type Entry struct {
	Token     string
	UserName  string
	CreatedAt time.Time
}

type fileEntry struct {
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}

// Manager persists tokens to a JSON file, creating it on first save.
type Manager struct {
	path   string
	logger zerolog.Logger

	mu     sync.Mutex
	tokens map[string]fileEntry
}

// NewManager loads (or creates) the token file at path.
func NewManager(path string, logger zerolog.Logger) (*Manager, error) {
	m := &Manager{
		path:   path,
		logger: logger.With().Str("component", "token").Logger(),
		tokens: make(map[string]fileEntry),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return m.save()
	}
	if err != nil {
		return fmt.Errorf("讀取 token 檔案失敗: %w", err)
	}
	if err := json.Unmarshal(data, &m.tokens); err != nil {
		return fmt.Errorf("解析 token 檔案失敗: %w", err)
	}
	return nil
}

// save 持久化目前的 token 表。呼叫方需持有 mu。
func (m *Manager) save() error {
	if dir := filepath.Dir(m.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("建立 token 目錄失敗: %w", err)
		}
	}
	data, err := json.MarshalIndent(m.tokens, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("寫入 token 檔案失敗: %w", err)
	}
	return nil
}

// Add registers a token for user. Re-adding overwrites the entry.
func (m *Manager) Add(tok, userName string) error {
	if tok == "" {
		return errors.New("token: token 不可為空")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[tok] = fileEntry{
		UserName:  userName,
		CreatedAt: time.Now().Format(timeLayout),
	}
	if err := m.save(); err != nil {
		return err
	}
	m.logger.Info().Str("user", userName).Msg("token 已新增")
	return nil
}

// Remove deletes a token.
func (m *Manager) Remove(tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tokens[tok]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, tok)
	return m.save()
}

// Verify reports whether a token is registered.
func (m *Manager) Verify(tok string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[tok]
	return ok
}

// UserName returns the owner of a token, or "" when unknown.
func (m *Manager) UserName(tok string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[tok].UserName
}

// List returns every registered token sorted by creation time, oldest
// first.
func (m *Manager) List() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.tokens))
	for tok, fe := range m.tokens {
		created, err := time.Parse(timeLayout, fe.CreatedAt)
		if err != nil {
			m.logger.Warn().Str("token", tok).Msg("建立時間格式異常")
		}
		entries = append(entries, Entry{Token: tok, UserName: fe.UserName, CreatedAt: created})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].Token < entries[j].Token
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries
}
