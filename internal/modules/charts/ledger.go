package charts

import (
	"sort"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
)

// RecentBlocks is how many ledger blocks the ledger table shows
const RecentBlocks = 50

// LatestBlocks returns up to n blocks, highest block number first
func LatestBlocks(blocks []domain.LedgerBlock, n int) []domain.LedgerBlock {
	ordered := make([]domain.LedgerBlock, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BlockNumber > ordered[j].BlockNumber
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

// TransactionTypeChart counts ledger blocks per transaction type
func TransactionTypeChart(blocks []domain.LedgerBlock) series.Series {
	types := make([]*string, len(blocks))
	for i, b := range blocks {
		types[i] = b.TransactionType
	}
	return series.FromCategoryCounts("Transaction Types", bucketing.TallyCategories(types, 0))
}

// DailyLedgerAmount sums block amounts per UTC day, oldest first. Blocks
// without a timestamp or amount are not counted.
func DailyLedgerAmount(blocks []domain.LedgerBlock) series.Series {
	daily := make(map[string]float64)
	for _, b := range blocks {
		if !b.Timestamp.Defined() || b.Amount == nil {
			continue
		}
		daily[bucketing.DayKey(b.Timestamp.Time)] += *b.Amount
	}
	return series.ToOrderedSeries("Daily Ledger Amount", daily)
}
