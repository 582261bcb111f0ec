package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agriwatch/internal/dataset"
)

const defaultBaseURL = "https://data.moa.gov.tw/Service/OpenData/FromM/FarmTransData.aspx"

// Options parameterise the FarmTrans open-data client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	UserAgent  string
}

// FarmTrans downloads transaction records from the open-data platform. A
// non-empty JSON array is the only response recognised as success; transport
// errors and empty/malformed payloads are retried up to the configured bound
// with a fixed delay, and the last error surfaces after exhaustion.
type FarmTrans struct {
	opts   Options
	logger zerolog.Logger
	client *http.Client
}

// NewFarmTrans constructs the open-data client.
func NewFarmTrans(opts Options, logger zerolog.Logger) *FarmTrans {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}

	return &FarmTrans{
		opts:   opts,
		logger: logger.With().Str("component", "farmtrans_fetcher").Logger(),
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// FetchAll downloads the whole current dataset.
func (f *FarmTrans) FetchAll(ctx context.Context) ([]dataset.RawRecord, error) {
	return f.fetch(ctx, "")
}

// FetchCrop downloads the records of a single crop.
func (f *FarmTrans) FetchCrop(ctx context.Context, cropName string) ([]dataset.RawRecord, error) {
	if strings.TrimSpace(cropName) == "" {
		return nil, errors.New("crop name is required")
	}
	return f.fetch(ctx, cropName)
}

func (f *FarmTrans) fetch(ctx context.Context, cropName string) ([]dataset.RawRecord, error) {
	endpoint := f.opts.BaseURL
	if cropName != "" {
		endpoint += "?crop=" + url.QueryEscape(cropName)
	}

	var lastErr error
	for attempt := 1; attempt <= f.opts.Retries; attempt++ {
		records, err := f.fetchOnce(ctx, endpoint)
		if err == nil {
			f.logger.Info().Int("records", len(records)).Int("attempt", attempt).Msg("資料下載成功")
			return records, nil
		}
		lastErr = err
		f.logger.Warn().Err(err).Int("attempt", attempt).Msg("資料下載失敗")

		if attempt == f.opts.Retries {
			break
		}
		timer := time.NewTimer(f.opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("下載資料失敗: %w", lastErr)
}

func (f *FarmTrans) fetchOnce(ctx context.Context, endpoint string) ([]dataset.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(f.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "agriwatch/1.0")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open data api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var records []dataset.RawRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("回傳的資料格式不正確: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("回傳的資料為空")
	}
	return records, nil
}

var _ TransDataFetcher = (*FarmTrans)(nil)
