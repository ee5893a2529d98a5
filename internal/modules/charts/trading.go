package charts

import (
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
	"github.com/aristath/ecoledger/pkg/formulas"
)

// VolumeWindow is the moving average window of daily trading volume, in days
const VolumeWindow = 7

// PortfolioStatusChart counts portfolios per status
func PortfolioStatusChart(portfolios []domain.PortfolioRecord) series.Series {
	statuses := make([]*string, len(portfolios))
	for i, p := range portfolios {
		statuses[i] = p.Status
	}
	return series.FromCategoryCounts("Portfolio Status", bucketing.TallyCategories(statuses, 0))
}

// YieldDistribution bins portfolio yields, scaled from fractions to percent
func YieldDistribution(portfolios []domain.PortfolioRecord) (series.Series, error) {
	yields := make([]*float64, len(portfolios))
	for i, p := range portfolios {
		yields[i] = p.PortfolioYield
	}
	return bucketSeries("Yield Distribution", bucketing.Scale(yields, 100), bucketing.YieldEdges, "%")
}

// DailyVolume sums trade prices per UTC day, oldest first. Trades without a
// timestamp or price are not counted.
func DailyVolume(trades []domain.TradeRecord) series.Series {
	daily := make(map[string]float64)
	for _, t := range trades {
		if !t.TradeTimestamp.Defined() || t.TradePrice == nil {
			continue
		}
		daily[bucketing.DayKey(t.TradeTimestamp.Time)] += *t.TradePrice
	}
	return series.ToOrderedSeries("Daily Volume", daily)
}

// VolumeMovingAverage smooths a daily volume series. Days before the first
// full window are omitted.
func VolumeMovingAverage(daily series.Series, window int) series.Series {
	avg := formulas.MovingAverage(daily.Values(), window)

	out := series.Series{Name: "Volume Moving Average", Points: make([]series.Point, 0, len(avg))}
	for i, v := range avg {
		if v == nil {
			continue
		}
		out.Points = append(out.Points, series.Point{Label: daily.Points[i].Label, Value: *v})
	}
	return out
}

// PortfolioScatter plots weighted ESG (x) against yield in percent (y)
func PortfolioScatter(portfolios []domain.PortfolioRecord) series.ScatterSeries {
	out := series.ScatterSeries{
		Name:   "Portfolios",
		XLabel: "ESG Score",
		YLabel: "Portfolio Yield (%)",
		Points: make([]series.ScatterPoint, 0),
	}

	for _, p := range portfolios {
		if p.WeightedESGScore == nil || p.PortfolioYield == nil {
			continue
		}
		point := series.ScatterPoint{
			ID: p.PortfolioID,
			X:  *p.WeightedESGScore,
			Y:  *p.PortfolioYield * 100,
		}
		if p.LoanCount != nil {
			point.Size = float64(*p.LoanCount)
		}
		out.Points = append(out.Points, point)
	}

	return out
}
