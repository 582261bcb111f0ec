// Package export renders crop data as Excel workbooks, CSV files, and
// PNG trend charts.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"agriwatch/internal/analysis"
)

// Exporter writes report files for a single crop.
type Exporter struct {
	logger zerolog.Logger
}

// New constructs an exporter.
func New(logger zerolog.Logger) *Exporter {
	return &Exporter{logger: logger.With().Str("component", "export").Logger()}
}

const (
	sheetRaw     = "原始資料"
	sheetDaily   = "每日統計"
	sheetMonthly = "月度統計"
	sheetMarket  = "市場統計"
)

// ExcelReport writes the four-sheet crop workbook. Statistics are rounded
// to two decimal places.
func (e *Exporter) ExcelReport(path, crop string, a *analysis.Analyzer) error {
	rows := a.CropRecords(crop)
	if len(rows) == 0 {
		return analysis.ErrNoData
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetRaw)
	writeHeader(f, sheetRaw, []string{"交易日期", "作物名稱", "市場名稱", "平均價", "交易量"})
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetRaw, fmt.Sprintf("A%d", row), r.TradeDate)
		f.SetCellValue(sheetRaw, fmt.Sprintf("B%d", row), r.CropName)
		f.SetCellValue(sheetRaw, fmt.Sprintf("C%d", row), r.MarketName)
		f.SetCellValue(sheetRaw, fmt.Sprintf("D%d", row), r.AvgPrice)
		f.SetCellValue(sheetRaw, fmt.Sprintf("E%d", row), r.Volume)
	}

	writeGroupSheet(f, sheetDaily, "日期", a.DailyStats(crop))
	writeGroupSheet(f, sheetMonthly, "月份", a.MonthlyStats(crop))
	writeGroupSheet(f, sheetMarket, "市場", a.MarketStats(crop))

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("寫入 Excel 失敗: %w", err)
	}
	e.logger.Info().Str("crop", crop).Str("path", path).Int("rows", len(rows)).Msg("Excel 報表已匯出")
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

func writeGroupSheet(f *excelize.File, sheet, keyHeader string, groups []analysis.GroupStats) {
	f.NewSheet(sheet)
	writeHeader(f, sheet, []string{keyHeader, "筆數", "平均價", "最低價", "最高價", "標準差", "總交易量", "平均交易量"})
	for i, g := range groups {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.Count)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), round2(g.PriceMean))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), round2(g.PriceMin))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), round2(g.PriceMax))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), round2(g.PriceStd))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), round2(g.VolumeSum))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), round2(g.VolumeMean))
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
