package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"agriwatch/internal/alerting"
	"agriwatch/internal/analysis"
	"agriwatch/internal/chat"
	"agriwatch/internal/config"
	"agriwatch/internal/dataset"
	"agriwatch/internal/export"
	"agriwatch/internal/fetcher"
	"agriwatch/internal/recorder"
	"agriwatch/internal/storage"
	"agriwatch/internal/token"
)

// ErrPremiumRequired gates the chat and Excel features behind a token.
var ErrPremiumRequired = errors.New("app: 此功能需要有效的 token")

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newFetcher() fetcher.TransDataFetcher {
	return fetcher.NewFarmTrans(fetcher.Options{
		BaseURL:    a.Config.Source.BaseURL,
		Timeout:    a.Config.Source.RequestTimeout,
		Retries:    a.Config.Source.Retries,
		RetryDelay: a.Config.Source.RetryDelay,
		UserAgent:  a.Config.Source.UserAgent,
	}, a.Logger)
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	store, err := storage.Open(ctx, a.Config.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Webhook.Enabled {
		cfg := a.Config.Alerting.Webhook
		return alerting.NewWebhookNotifier(cfg.URL, cfg.RequestTimeout, a.Logger)
	}
	return alerting.NewLogNotifier(a.Logger)
}

func (a *App) newExporter() *export.Exporter {
	return export.New(a.Logger)
}

func (a *App) newChatClient() *chat.Client {
	return chat.NewClient(chat.Options{
		BaseURL: a.Config.Chat.BaseURL,
		Model:   a.Config.Chat.Model,
		Timeout: a.Config.Chat.RequestTimeout,
	}, a.Logger)
}

func (a *App) openTokens() (*token.Manager, error) {
	return token.NewManager(a.Config.Token.Path, a.Logger)
}

func (a *App) openRecorder() (*recorder.Recorder, error) {
	return recorder.New(a.Config.Recorder.Dir, a.Logger)
}

// requirePremium verifies the token unlocking chat and Excel export.
func (a *App) requirePremium(tok string) error {
	if tok == "" {
		return ErrPremiumRequired
	}
	tokens, err := a.openTokens()
	if err != nil {
		return err
	}
	if !tokens.Verify(tok) {
		return ErrPremiumRequired
	}
	return nil
}

// loadAnalyzer downloads transaction data and builds an analyzer over the
// cleaned table. An empty crop downloads the full feed.
func (a *App) loadAnalyzer(ctx context.Context, crop string) (*analysis.Analyzer, error) {
	f := a.newFetcher()

	var (
		raws []dataset.RawRecord
		err  error
	)
	if crop == "" {
		raws, err = f.FetchAll(ctx)
	} else {
		raws, err = f.FetchCrop(ctx, crop)
	}
	if err != nil {
		return nil, err
	}

	table, err := dataset.Clean(raws)
	if err != nil {
		return nil, fmt.Errorf("清理資料失敗: %w", err)
	}

	a.Logger.Info().
		Int("rows", table.Len()).
		Int("dropped", table.Dropped()).
		Int("crops", len(table.Crops())).
		Msg("資料已載入")

	return analysis.New(table), nil
}
