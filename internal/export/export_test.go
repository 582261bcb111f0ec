package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"agriwatch/internal/analysis"
	"agriwatch/internal/dataset"
)

func testAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	raws := []dataset.RawRecord{
		{TransDate: "114.03.03", CropName: "番茄", MarketName: "台北一", AvgPrice: "30", Quantity: "1000"},
		{TransDate: "114.03.03", CropName: "番茄", MarketName: "台北二", AvgPrice: "34", Quantity: "800"},
		{TransDate: "114.03.04", CropName: "番茄", MarketName: "台北一", AvgPrice: "32", Quantity: "1200"},
		{TransDate: "114.04.01", CropName: "番茄", MarketName: "高雄", AvgPrice: "40", Quantity: "500"},
		{TransDate: "114.03.03", CropName: "高麗菜", MarketName: "台北一", AvgPrice: "18", Quantity: "3000"},
	}
	table, err := dataset.Clean(raws)
	if err != nil {
		t.Fatalf("清理資料失敗: %v", err)
	}
	return analysis.New(table)
}

func TestExcelReportSheets(t *testing.T) {
	a := testAnalyzer(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	exporter := New(zerolog.Nop())
	if err := exporter.ExcelReport(path, "番茄", a); err != nil {
		t.Fatalf("匯出 Excel 失敗: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("開啟 Excel 失敗: %v", err)
	}
	defer f.Close()

	want := []string{"原始資料", "每日統計", "月度統計", "市場統計"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("工作表數量不正確: %v", got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("工作表順序不正確: %v", got)
		}
	}

	// 原始資料只含目標作物
	rows, err := f.GetRows("原始資料")
	if err != nil {
		t.Fatalf("讀取工作表失敗: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("原始資料列數不正確: %d", len(rows))
	}
	for _, row := range rows[1:] {
		if row[1] != "番茄" {
			t.Fatalf("不應包含其他作物: %v", row)
		}
	}

	daily, err := f.GetRows("每日統計")
	if err != nil {
		t.Fatalf("讀取工作表失敗: %v", err)
	}
	// 3 個交易日 + 標題
	if len(daily) != 4 {
		t.Fatalf("每日統計列數不正確: %d", len(daily))
	}
	if daily[1][0] != "2025-03-03" || daily[1][2] != "32" {
		t.Fatalf("每日統計內容不正確: %v", daily[1])
	}

	monthly, err := f.GetRows("月度統計")
	if err != nil {
		t.Fatalf("讀取工作表失敗: %v", err)
	}
	if len(monthly) != 3 || monthly[1][0] != "03" || monthly[2][0] != "04" {
		t.Fatalf("月度統計內容不正確: %v", monthly)
	}
}

func TestExcelReportUnknownCrop(t *testing.T) {
	a := testAnalyzer(t)
	exporter := New(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := exporter.ExcelReport(path, "絲瓜", a); !errors.Is(err, analysis.ErrNoData) {
		t.Fatalf("期望 ErrNoData, 實際 %v", err)
	}
}

func TestCSVExport(t *testing.T) {
	a := testAnalyzer(t)
	path := filepath.Join(t.TempDir(), "out", "tomato.csv")

	exporter := New(zerolog.Nop())
	if err := exporter.CSV(path, "番茄", a); err != nil {
		t.Fatalf("匯出 CSV 失敗: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("開啟 CSV 失敗: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("讀取 CSV 失敗: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("CSV 列數不正確: %d", len(rows))
	}
	if rows[0][0] != "交易日期" || rows[0][4] != "交易量" {
		t.Fatalf("標題不正確: %v", rows[0])
	}
	if rows[1][0] != "114.03.03" || rows[1][3] != "30" {
		t.Fatalf("資料列不正確: %v", rows[1])
	}
}

func TestTrendChartPNG(t *testing.T) {
	a := testAnalyzer(t)
	path := filepath.Join(t.TempDir(), "trend.png")

	exporter := New(zerolog.Nop())
	if err := exporter.TrendChartPNG(path, "番茄", a); err != nil {
		t.Fatalf("匯出走勢圖失敗: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("走勢圖檔案不存在: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("走勢圖檔案不應為空")
	}
}

func TestRollingMean(t *testing.T) {
	got := rollingMean([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("移動平均不正確: %v", got)
		}
	}
}
