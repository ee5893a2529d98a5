package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/charts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSnapshot() charts.Snapshot {
	loans := []domain.LoanRecord{
		{LoanID: "L1", Approved: domain.Bool(true), LoanAmount: domain.Float(1000), CombinedCreditScore: domain.Float(85), ESGCompositeScore: domain.Float(70), FinancialHealthScore: domain.Float(60)},
		{LoanID: "L2", Approved: domain.Bool(false), CombinedCreditScore: domain.Float(45)},
	}
	trades := []domain.TradeRecord{
		{TradeID: "T1", TradePrice: domain.Float(500), TradeTimestamp: domain.NewTimestamp(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))},
	}

	return charts.Snapshot{
		GeneratedAt: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
		Dashboard:   charts.BuildDashboard(loans, nil, trades, nil),
		Analytics:   charts.BuildAnalytics(loans),
		Trading:     charts.BuildTrading(nil, trades),
	}
}

func TestWorkbook_Sheets(t *testing.T) {
	f, err := Workbook(testSnapshot())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDashboard, SheetAnalytics, SheetTrading}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Dashboard Summary", v)

	v, err = f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	v, err = f.GetCellValue(SheetDashboard, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Loan Status", v)

	v, err = f.GetCellValue(SheetDashboard, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestWorkbook_PerformanceTable(t *testing.T) {
	f, err := Workbook(testSnapshot())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAnalytics)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"Performance"}, rows[0])
	assert.Equal(t, []string{"Label", "Credit Score", "ESG Score", "Financial Health"}, rows[1])
	assert.Equal(t, []string{"1", "85", "70", "60"}, rows[2])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot()))
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetTrading)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}
