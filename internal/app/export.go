package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"agriwatch/internal/analysis"
)

// ExportOptions configure the export command. Excel output requires a
// premium token.
type ExportOptions struct {
	Crop      string
	ExcelPath string
	CSVPath   string
	PNGPath   string
	Token     string
}

// Export renders the crop's data as an Excel report, CSV file, and/or PNG
// trend chart.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.ExcelPath == "" && opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("至少需指定 --excel, --csv 或 --png 其中之一")
	}
	if opts.ExcelPath != "" {
		if err := a.requirePremium(opts.Token); err != nil {
			return err
		}
	}

	analyzer, err := a.loadAnalyzer(ctx, opts.Crop)
	if err != nil {
		return err
	}

	exporter := a.newExporter()

	if opts.CSVPath != "" {
		if err := exporter.CSV(a.resolvePath(opts.CSVPath), opts.Crop, analyzer); err != nil {
			return renderNoData(err)
		}
	}
	if opts.PNGPath != "" {
		if err := exporter.TrendChartPNG(a.resolvePath(opts.PNGPath), opts.Crop, analyzer); err != nil {
			return renderNoData(err)
		}
	}
	if opts.ExcelPath != "" {
		if err := exporter.ExcelReport(a.resolvePath(opts.ExcelPath), opts.Crop, analyzer); err != nil {
			return renderNoData(err)
		}
	}
	return nil
}

// resolvePath keeps absolute paths as-is and drops relative ones into the
// configured export directory.
func (a *App) resolvePath(path string) string {
	if filepath.IsAbs(path) || a.Config.Export.Dir == "" {
		return path
	}
	return filepath.Join(a.Config.Export.Dir, path)
}

func renderNoData(err error) error {
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(os.Stdout, "無可用資料")
		return nil
	}
	return err
}
