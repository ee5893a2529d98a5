package charts

import (
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/bucketing"
	"github.com/aristath/ecoledger/internal/modules/series"
)

// VerificationStatusChart counts documents per verification status
func VerificationStatusChart(docs []domain.DocumentRecord) series.Series {
	statuses := make([]*string, len(docs))
	for i, d := range docs {
		statuses[i] = d.VerificationStatus
	}
	return series.FromCategoryCounts("Verification Status", bucketing.TallyCategories(statuses, 0))
}

// DocumentTypeChart counts documents per type
func DocumentTypeChart(docs []domain.DocumentRecord) series.Series {
	types := make([]*string, len(docs))
	for i, d := range docs {
		types[i] = d.DocumentType
	}
	return series.FromCategoryCounts("Document Types", bucketing.TallyCategories(types, 0))
}

// OCRConfidenceDistribution bins OCR confidence, scaled from fractions to percent
func OCRConfidenceDistribution(docs []domain.DocumentRecord) (series.Series, error) {
	confidences := make([]*float64, len(docs))
	for i, d := range docs {
		confidences[i] = d.OCRConfidence
	}
	return bucketSeries("OCR Confidence", bucketing.Scale(confidences, 100), bucketing.ConfidenceEdges, "%")
}
