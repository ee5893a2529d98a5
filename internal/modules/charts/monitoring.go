package charts

import (
	"sort"

	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/compliance"
	"github.com/aristath/ecoledger/internal/modules/series"
)

// Monitoring trend series names
const (
	SeriesEnergySavings   = "Energy Savings %"
	SeriesCarbonReduction = "Carbon Reduction %"
	SeriesESGTrend        = "ESG Score"
	SeriesEnergyTarget    = "Energy Target"
	SeriesCarbonTarget    = "Carbon Target"
	SeriesESGTarget       = "ESG Target"
)

// MonitoringTrends plots energy savings, carbon reduction and ESG score per
// month next to their compliance thresholds. A month missing one of the
// metrics, or reported twice, is a shape error.
func MonitoringTrends(history []domain.MonitoringRecord) (series.MultiSeries, error) {
	records := make([]domain.MonitoringRecord, len(history))
	copy(records, history)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Month < records[j].Month
	})

	energy := series.Series{Name: SeriesEnergySavings}
	carbon := series.Series{Name: SeriesCarbonReduction}
	esg := series.Series{Name: SeriesESGTrend}
	var labels []string

	for _, rec := range records {
		label := bucketing.MonthLabel(rec.Month)
		labels = append(labels, label)
		if rec.EnergySavingsPct != nil {
			energy.Points = append(energy.Points, series.Point{Label: label, Value: *rec.EnergySavingsPct})
		}
		if rec.CarbonReductionPct != nil {
			carbon.Points = append(carbon.Points, series.Point{Label: label, Value: *rec.CarbonReductionPct})
		}
		if rec.ESGScore != nil {
			esg.Points = append(esg.Points, series.Point{Label: label, Value: *rec.ESGScore})
		}
	}

	energyTarget := series.ConstantSeries(SeriesEnergyTarget, labels, compliance.MinEnergySavingsPct)
	carbonTarget := series.ConstantSeries(SeriesCarbonTarget, labels, compliance.MinCarbonReductionPct)
	esgTarget := series.ConstantSeries(SeriesESGTarget, labels, compliance.MinESGScore)

	// A threshold line carries every month, so it fixes the label axis
	list := []series.Series{energyTarget, energy, carbon, esg, carbonTarget, esgTarget}
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}

	ms, err := series.ZipMultiSeries(names, list)
	if err != nil {
		return series.MultiSeries{}, err
	}

	ms.Series = []series.Series{ms.Series[1], ms.Series[2], ms.Series[3], ms.Series[0], ms.Series[4], ms.Series[5]}
	return ms, nil
}

// ComplianceDoughnut splits the history into compliant and non-compliant months
func ComplianceDoughnut(history []domain.MonitoringRecord) series.Series {
	summary := compliance.SummarizeCompliance(history)
	return series.Series{Name: "Compliance", Points: []series.Point{
		{Label: "Compliant", Value: float64(summary.Compliant)},
		{Label: "Non-Compliant", Value: float64(summary.NonCompliant)},
	}}
}
