package export

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"agriwatch/internal/analysis"
)

// CSV writes a crop's cleaned rows with the upstream column names.
func (e *Exporter) CSV(path, crop string, a *analysis.Analyzer) error {
	rows := a.CropRecords(crop)
	if len(rows) == 0 {
		return analysis.ErrNoData
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"交易日期", "作物名稱", "市場名稱", "平均價", "交易量"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.TradeDate,
			r.CropName,
			r.MarketName,
			strconv.FormatFloat(r.AvgPrice, 'f', -1, 64),
			strconv.FormatFloat(r.Volume, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Error(); err != nil {
		return err
	}
	e.logger.Info().Str("crop", crop).Str("path", path).Int("rows", len(rows)).Msg("CSV 已匯出")
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
