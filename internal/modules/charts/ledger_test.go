package charts

import (
	"fmt"
	"testing"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlocks(t *testing.T) []domain.LedgerBlock {
	return []domain.LedgerBlock{
		{BlockNumber: 1, BlockHash: "h1", TransactionType: domain.String("trade"), Amount: domain.Float(100), Timestamp: ts(t, "2024-05-01T09:00:00")},
		{BlockNumber: 3, BlockHash: "h3", TransactionType: domain.String("listing"), Amount: domain.Float(40), Timestamp: ts(t, "2024-05-02T12:00:00")},
		{BlockNumber: 2, BlockHash: "h2", TransactionType: domain.String("trade"), Amount: domain.Float(60), Timestamp: ts(t, "2024-05-01T18:30:00")},
		{BlockNumber: 4, BlockHash: "h4", Amount: domain.Float(5)},
		{BlockNumber: 5, BlockHash: " ", TransactionType: domain.String("trade"), Amount: domain.Float(999)},
	}
}

func TestLatestBlocks(t *testing.T) {
	var blocks []domain.LedgerBlock
	for i := 1; i <= RecentBlocks+10; i++ {
		blocks = append(blocks, domain.LedgerBlock{BlockNumber: i, BlockHash: fmt.Sprintf("h%d", i)})
	}

	latest := LatestBlocks(blocks, RecentBlocks)
	require.Len(t, latest, RecentBlocks)
	assert.Equal(t, RecentBlocks+10, latest[0].BlockNumber)
	assert.Equal(t, 11, latest[RecentBlocks-1].BlockNumber)
	assert.Equal(t, 1, blocks[0].BlockNumber, "input left in place")

	assert.Empty(t, LatestBlocks(nil, RecentBlocks))
}

func TestTransactionTypeChart(t *testing.T) {
	chart := TransactionTypeChart(testBlocks(t)[:4])
	assert.Equal(t, "Transaction Types", chart.Name)
	assert.Equal(t, []string{"trade", "listing", "Unknown"}, chart.Labels())
	assert.Equal(t, []float64{2, 1, 1}, chart.Values())
}

func TestDailyLedgerAmount(t *testing.T) {
	chart := DailyLedgerAmount(testBlocks(t)[:4])
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, chart.Labels())
	assert.Equal(t, []float64{160, 40}, chart.Values())
}

func TestBuildLedger(t *testing.T) {
	validation := &domain.LedgerValidation{IsValid: true, Message: "Chain is valid"}
	tab := BuildLedger(testBlocks(t), validation)

	assert.Equal(t, 4, tab.TotalBlocks)
	assert.Equal(t, 1, tab.SkippedRecords)
	require.Len(t, tab.Blocks, 4)
	assert.Equal(t, 4, tab.Blocks[0].BlockNumber)
	assert.Equal(t, 1, tab.Blocks[3].BlockNumber)
	assert.Equal(t, 200.0, tab.TotalAmount)
	assert.Same(t, validation, tab.Validation)
	assert.Nil(t, tab.Errors)
}

func TestBuildLedger_Empty(t *testing.T) {
	tab := BuildLedger(nil, nil)
	assert.Zero(t, tab.TotalBlocks)
	assert.Empty(t, tab.Blocks)
	assert.Zero(t, tab.TransactionTypes.Len())
	assert.Zero(t, tab.TotalAmount)
	assert.Nil(t, tab.Validation)
}
