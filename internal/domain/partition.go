package domain

import "strings"

// Identified is implemented by every record with a required identifier
type Identified interface {
	RecordKind() string
	IdentifierField() string
	Identifier() string
}

func (l LoanRecord) RecordKind() string      { return "loan" }
func (l LoanRecord) IdentifierField() string { return "loan_id" }
func (l LoanRecord) Identifier() string      { return l.LoanID }

func (p PortfolioRecord) RecordKind() string      { return "portfolio" }
func (p PortfolioRecord) IdentifierField() string { return "portfolio_id" }
func (p PortfolioRecord) Identifier() string      { return p.PortfolioID }

func (t TradeRecord) RecordKind() string      { return "trade" }
func (t TradeRecord) IdentifierField() string { return "trade_id" }
func (t TradeRecord) Identifier() string      { return t.TradeID }

func (d DocumentRecord) RecordKind() string      { return "document" }
func (d DocumentRecord) IdentifierField() string { return "document_id" }
func (d DocumentRecord) Identifier() string      { return d.DocumentID }

func (m MonitoringRecord) RecordKind() string      { return "monitoring" }
func (m MonitoringRecord) IdentifierField() string { return "loan_id" }
func (m MonitoringRecord) Identifier() string      { return m.LoanID }

func (b LedgerBlock) RecordKind() string      { return "ledger" }
func (b LedgerBlock) IdentifierField() string { return "block_hash" }
func (b LedgerBlock) Identifier() string      { return b.BlockHash }

// Partition splits records into those carrying their identifier and errors
// describing the ones that do not. Order of valid records is preserved.
func Partition[T Identified](records []T) ([]T, []*MalformedRecordError) {
	valid := make([]T, 0, len(records))
	var skipped []*MalformedRecordError

	for i, rec := range records {
		if strings.TrimSpace(rec.Identifier()) == "" {
			skipped = append(skipped, &MalformedRecordError{
				Kind:  rec.RecordKind(),
				Index: i,
				Field: rec.IdentifierField(),
			})
			continue
		}
		valid = append(valid, rec)
	}

	return valid, skipped
}
