// Package export renders chart snapshots as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/aristath/ecoledger/internal/modules/series"
	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order
const (
	SheetSummary   = "Summary"
	SheetDashboard = "Dashboard"
	SheetAnalytics = "Analytics"
	SheetTrading   = "Trading"
)

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sheetWriter appends rows to one sheet, leaving a blank row between blocks
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	header int
	err    error
}

func (w *sheetWriter) put(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) title(name string) {
	w.put(name)
	if w.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(1, w.row)
	w.err = w.f.SetCellStyle(w.sheet, cell, cell, w.header)
}

func (w *sheetWriter) gap() {
	w.row++
}

func (w *sheetWriter) series(s series.Series) {
	w.title(s.Name)
	for _, p := range s.Points {
		w.put(p.Label, p.Value)
	}
	w.gap()
}

func (w *sheetWriter) multi(title string, ms series.MultiSeries) {
	w.title(title)
	header := []interface{}{"Label"}
	for _, s := range ms.Series {
		header = append(header, s.Name)
	}
	w.put(header...)
	for i, label := range ms.Labels {
		row := []interface{}{label}
		for _, s := range ms.Series {
			row = append(row, s.Points[i].Value)
		}
		w.put(row...)
	}
	w.gap()
}

func (w *sheetWriter) scatter(s series.ScatterSeries) {
	w.title(s.Name)
	w.put("ID", s.XLabel, s.YLabel, "Size")
	for _, p := range s.Points {
		w.put(p.ID, p.X, p.Y, p.Size)
	}
	w.gap()
}

func (w *sheetWriter) errors(errs map[string]string) {
	if len(errs) == 0 {
		return
	}
	w.title("Chart Errors")
	for chart, msg := range errs {
		w.put(chart, msg)
	}
	w.gap()
}

// Workbook builds a workbook with one sheet per tab of the snapshot
func Workbook(snap charts.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{SheetDashboard, SheetAnalytics, SheetTrading} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	writers := []*sheetWriter{
		writeSummary(f, header, snap),
		writeDashboard(f, header, snap.Dashboard),
		writeAnalytics(f, header, snap.Analytics),
		writeTrading(f, header, snap.Trading),
	}
	for _, w := range writers {
		if w.err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", w.sheet, w.err)
		}
	}

	return f, nil
}

// Write renders the snapshot workbook to out
func Write(out io.Writer, snap charts.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, header int, snap charts.Snapshot) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetSummary, header: header}
	s := snap.Dashboard.Summary

	w.title("Dashboard Summary")
	w.put("Generated At", snap.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	w.put("Total Loans", s.TotalLoans)
	w.put("Approved Loans", s.ApprovedLoans)
	w.put("Approval Rate", s.ApprovalRate)
	w.put("Total Loan Value", s.TotalLoanValue)
	w.put("Average ESG Score", s.AvgESGScore)
	w.put("Total Portfolios", s.TotalPortfolios)
	w.put("Total Trades", s.TotalTrades)
	w.put("Total Trading Volume", s.TotalTradingVolume)
	w.put("Compliance Rate", s.ComplianceRate)
	w.put("Total Borrower Savings", s.TotalBorrowerSavings)
	w.put("Skipped Records", s.SkippedRecords)
	if s.AvgCarbonReduction != nil {
		w.put("Average Carbon Reduction", *s.AvgCarbonReduction)
	}
	return w
}

func writeDashboard(f *excelize.File, header int, tab charts.DashboardTab) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetDashboard, header: header}
	w.series(tab.LoanStatus)
	w.series(tab.ProjectTypes)
	w.series(tab.Countries)
	w.series(tab.ApplicationsTrend)
	w.series(tab.ScoreDistribution)
	w.series(tab.ESGDistribution)
	w.errors(tab.Errors)
	return w
}

func writeAnalytics(f *excelize.File, header int, tab charts.AnalyticsTab) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetAnalytics, header: header}
	w.multi("Performance", tab.Performance)
	w.series(tab.RiskDistribution)
	w.series(tab.CarbonImpact)
	w.scatter(tab.Scatter)

	w.title("Statistics")
	w.put("Loans", tab.Statistics.Loans)
	w.put("Credit/ESG Correlation", tab.Statistics.Correlation)
	w.put("Credit Mean", tab.Statistics.CreditMean)
	w.put("Credit Std Dev", tab.Statistics.CreditStd)
	w.put("ESG Mean", tab.Statistics.ESGMean)
	w.put("ESG Std Dev", tab.Statistics.ESGStd)
	w.gap()

	w.errors(tab.Errors)
	return w
}

func writeTrading(f *excelize.File, header int, tab charts.TradingTab) *sheetWriter {
	w := &sheetWriter{f: f, sheet: SheetTrading, header: header}
	w.series(tab.PortfolioStatus)
	w.series(tab.YieldDistribution)
	w.series(tab.DailyVolume)
	w.series(tab.VolumeAverage)
	w.scatter(tab.PortfolioScatter)
	w.put("Total Volume", tab.TotalVolume)
	w.errors(tab.Errors)
	return w
}
