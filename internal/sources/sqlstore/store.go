// Package sqlstore reads analytics records straight from the lending
// platform's database (SQLite file or PostgreSQL).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aristath/ecoledger/internal/database"
	"github.com/aristath/ecoledger/internal/domain"
	"github.com/aristath/ecoledger/internal/modules/compliance"
	"github.com/aristath/ecoledger/internal/modules/ledger"
	"github.com/rs/zerolog"
)

// Column lists are explicit so schema additions never break scanning.
// Order must match the scan functions below.
const (
	loanColumns = `loan_id, loan_approved, financial_health_score, esg_composite_score,
combined_credit_score, loan_amount, loan_term_months, project_type, country,
application_date, processing_status`

	portfolioColumns = `portfolio_id, seller_id, buyer_id, loan_count, total_value,
portfolio_price, portfolio_yield, weighted_credit_score, weighted_esg_score,
avg_carbon_reduction_pct, status, creation_date`

	tradeColumns = `trade_id, portfolio_id, seller_id, buyer_id, trade_price, loan_count,
portfolio_yield, trade_timestamp, status`

	documentColumns = `document_id, loan_id, document_type, verification_status,
ocr_confidence, upload_timestamp, file_size_kb, page_count`

	monitoringColumns = `loan_id, month, monitoring_date, energy_savings_pct,
carbon_reduction_pct, renewable_energy_pct, esg_score, in_compliance,
project_status, data_source`

	rateHistoryColumns = `month, adjustment_date, base_rate, adjusted_rate,
milestone_tier, total_discount, carbon_reduction_pct`

	ledgerColumns = `block_number, timestamp, transaction_type, transaction_id,
portfolio_id, seller_id, buyer_id, amount, block_hash, previous_hash,
merkle_root, nonce`
)

// rowScanner is satisfied by *sql.Rows and *sql.Row
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Store is a read-only Source backed by SQL tables
type Store struct {
	db        *database.DB
	loanLimit int
	log       zerolog.Logger
}

// NewStore creates a store over an open database
func NewStore(db *database.DB, loanLimit int, log zerolog.Logger) *Store {
	return &Store{
		db:        db,
		loanLimit: loanLimit,
		log:       log.With().Str("component", "sqlstore").Str("database", db.Name()).Logger(),
	}
}

// Name identifies the source in logs and status output
func (s *Store) Name() string {
	return string(s.db.Driver())
}

// HealthCheck verifies the underlying connection
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Loans returns loan applications, newest first
func (s *Store) Loans(ctx context.Context) ([]domain.LoanRecord, error) {
	query := "SELECT " + loanColumns + " FROM loan_applications ORDER BY application_date DESC"
	var args []interface{}
	if s.loanLimit > 0 {
		query += " LIMIT ?"
		args = append(args, s.loanLimit)
	}

	return queryAll(ctx, s, "loans", query, scanLoan, args...)
}

// Portfolios returns all portfolios, newest first
func (s *Store) Portfolios(ctx context.Context) ([]domain.PortfolioRecord, error) {
	query := "SELECT " + portfolioColumns + " FROM portfolios ORDER BY creation_date DESC"
	return queryAll(ctx, s, "portfolios", query, scanPortfolio)
}

// Trades returns all trades, newest first
func (s *Store) Trades(ctx context.Context) ([]domain.TradeRecord, error) {
	query := "SELECT " + tradeColumns + " FROM trades ORDER BY trade_timestamp DESC"
	return queryAll(ctx, s, "trades", query, scanTrade)
}

// Documents returns all documents, newest first
func (s *Store) Documents(ctx context.Context) ([]domain.DocumentRecord, error) {
	query := "SELECT " + documentColumns + " FROM documents ORDER BY upload_timestamp DESC"
	return queryAll(ctx, s, "documents", query, scanDocument)
}

// MonitoringHistory returns the monitoring records of one loan by month
func (s *Store) MonitoringHistory(ctx context.Context, loanID string) ([]domain.MonitoringRecord, error) {
	query := "SELECT " + monitoringColumns + " FROM monitoring_records WHERE loan_id = ? ORDER BY month"
	return queryAll(ctx, s, "monitoring history", query, scanMonitoring, loanID)
}

// AllMonitoring returns the monitoring records of every loan, by loan and month
func (s *Store) AllMonitoring(ctx context.Context) ([]domain.MonitoringRecord, error) {
	query := "SELECT " + monitoringColumns + " FROM monitoring_records ORDER BY loan_id, month"
	return queryAll(ctx, s, "monitoring records", query, scanMonitoring)
}

// Alerts derives alerts from the latest non-compliant monitoring record of
// every loan. The database holds no alert table of its own.
func (s *Store) Alerts(ctx context.Context) ([]domain.AlertRecord, error) {
	records, err := s.AllMonitoring(ctx)
	if err != nil {
		return nil, err
	}

	derived := compliance.BuildAlerts(records)
	alerts := make([]domain.AlertRecord, 0, len(derived))
	for _, a := range derived {
		alerts = append(alerts, domain.AlertRecord{
			LoanID:            a.LoanID,
			MonitoringDate:    a.MonitoringDate,
			Severity:          a.Severity.String(),
			ViolationReasons:  a.Violations,
			RecommendedAction: a.RecommendedAction,
		})
	}

	s.log.Debug().Int("alerts", len(alerts)).Msg("Derived compliance alerts")
	return alerts, nil
}

// RateHistory returns the stored rate adjustments of one loan by month
func (s *Store) RateHistory(ctx context.Context, loanID string) ([]domain.RateHistoryEntry, error) {
	query := "SELECT " + rateHistoryColumns + " FROM rate_adjustments WHERE loan_id = ? ORDER BY month"
	return queryAll(ctx, s, "rate history", query, scanRateHistory, loanID)
}

// Savings computes borrower savings from the latest rate adjustment of the
// loan: interest = amount * rate/100 * term/12. Returns nil when the loan
// has no adjustment. A month recalculated several times counts only its
// last adjustment.
func (s *Store) Savings(ctx context.Context, loanID string) (*domain.SavingsRecord, error) {
	query := `SELECT l.loan_amount, l.loan_term_months, r.base_rate, r.adjusted_rate
FROM rate_adjustments r
JOIN loan_applications l ON l.loan_id = r.loan_id
WHERE r.loan_id = ?
ORDER BY r.month DESC, r.adjustment_date DESC
LIMIT 1`

	var (
		amount       sql.NullFloat64
		term         sql.NullInt64
		baseRate     float64
		adjustedRate float64
	)
	err := s.db.QueryRowContext(ctx, query, loanID).Scan(&amount, &term, &baseRate, &adjustedRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query savings for loan %s: %w", loanID, err)
	}

	rec := ComputeSavings(loanID, amount.Float64, int(term.Int64), baseRate, adjustedRate)
	return &rec, nil
}

// AllSavings computes savings from the latest adjustment of every approved
// loan, one row per loan, picked the same way as Savings
func (s *Store) AllSavings(ctx context.Context) ([]domain.SavingsRecord, error) {
	query := `SELECT loan_id, loan_amount, loan_term_months, base_rate, adjusted_rate
FROM (
	SELECT r.loan_id, l.loan_amount, l.loan_term_months, r.base_rate, r.adjusted_rate,
		ROW_NUMBER() OVER (
			PARTITION BY r.loan_id
			ORDER BY r.month DESC, r.adjustment_date DESC
		) AS rn
	FROM rate_adjustments r
	JOIN loan_applications l ON l.loan_id = r.loan_id AND l.loan_approved
) latest
WHERE rn = 1
ORDER BY loan_id`

	return queryAll(ctx, s, "savings", query, scanSavings)
}

// LedgerBlocks returns the ledger, newest block first
func (s *Store) LedgerBlocks(ctx context.Context) ([]domain.LedgerBlock, error) {
	query := "SELECT " + ledgerColumns + " FROM blockchain_ledger ORDER BY block_number DESC"
	return queryAll(ctx, s, "ledger blocks", query, scanLedgerBlock)
}

// ValidateLedger re-checks the hash chain of the whole ledger
func (s *Store) ValidateLedger(ctx context.Context) (domain.LedgerValidation, error) {
	query := "SELECT " + ledgerColumns + " FROM blockchain_ledger ORDER BY block_number"
	blocks, err := queryAll(ctx, s, "ledger blocks", query, scanLedgerBlock)
	if err != nil {
		return domain.LedgerValidation{}, err
	}

	v := ledger.ValidateChain(blocks)
	if !v.IsValid {
		s.log.Warn().Str("reason", v.Message).Int("blocks", len(blocks)).Msg("Ledger chain is broken")
	}
	return v, nil
}

// ComputeSavings applies the simple-interest savings formula
func ComputeSavings(loanID string, amount float64, termMonths int, baseRate, adjustedRate float64) domain.SavingsRecord {
	years := float64(termMonths) / 12
	base := amount * (baseRate / 100) * years
	adjusted := amount * (adjustedRate / 100) * years

	rec := domain.SavingsRecord{
		LoanID:           loanID,
		LoanAmount:       amount,
		BaseInterest:     base,
		AdjustedInterest: adjusted,
		TotalSavings:     base - adjusted,
	}
	if base > 0 {
		rec.SavingsPct = rec.TotalSavings / base * 100
	}
	return rec
}

func queryAll[T any](
	ctx context.Context,
	s *Store,
	what string,
	query string,
	scan func(rowScanner) (T, error),
	args ...interface{},
) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", what, err)
	}

	return out, nil
}

func scanLoan(row rowScanner) (domain.LoanRecord, error) {
	var (
		loanID                             sql.NullString
		approved                           sql.NullBool
		health, esg, combined, amount      sql.NullFloat64
		term                               sql.NullInt64
		projectType, country, appDate, sts sql.NullString
	)
	if err := row.Scan(&loanID, &approved, &health, &esg, &combined, &amount, &term,
		&projectType, &country, &appDate, &sts); err != nil {
		return domain.LoanRecord{}, err
	}

	return domain.LoanRecord{
		LoanID:               loanID.String,
		Approved:             nullBool(approved),
		FinancialHealthScore: nullFloat(health),
		ESGCompositeScore:    nullFloat(esg),
		CombinedCreditScore:  nullFloat(combined),
		LoanAmount:           nullFloat(amount),
		LoanTermMonths:       nullInt(term),
		ProjectType:          nullString(projectType),
		Country:              nullString(country),
		ApplicationDate:      nullTimestamp(appDate),
		ProcessingStatus:     nullString(sts),
	}, nil
}

func scanPortfolio(row rowScanner) (domain.PortfolioRecord, error) {
	var (
		id, seller, buyer                     sql.NullString
		loanCount                             sql.NullInt64
		value, price, yield, credit, esg, co2 sql.NullFloat64
		status, created                       sql.NullString
	)
	if err := row.Scan(&id, &seller, &buyer, &loanCount, &value, &price, &yield,
		&credit, &esg, &co2, &status, &created); err != nil {
		return domain.PortfolioRecord{}, err
	}

	return domain.PortfolioRecord{
		PortfolioID:           id.String,
		SellerID:              seller.String,
		BuyerID:               nullString(buyer),
		LoanCount:             nullInt(loanCount),
		TotalValue:            nullFloat(value),
		PortfolioPrice:        nullFloat(price),
		PortfolioYield:        nullFloat(yield),
		WeightedCreditScore:   nullFloat(credit),
		WeightedESGScore:      nullFloat(esg),
		AvgCarbonReductionPct: nullFloat(co2),
		Status:                nullString(status),
		CreationDate:          nullTimestamp(created),
	}, nil
}

func scanTrade(row rowScanner) (domain.TradeRecord, error) {
	var (
		id, portfolio, seller, buyer sql.NullString
		price, yield                 sql.NullFloat64
		loanCount                    sql.NullInt64
		ts, status                   sql.NullString
	)
	if err := row.Scan(&id, &portfolio, &seller, &buyer, &price, &loanCount, &yield,
		&ts, &status); err != nil {
		return domain.TradeRecord{}, err
	}

	return domain.TradeRecord{
		TradeID:        id.String,
		PortfolioID:    portfolio.String,
		SellerID:       seller.String,
		BuyerID:        buyer.String,
		TradePrice:     nullFloat(price),
		LoanCount:      nullInt(loanCount),
		PortfolioYield: nullFloat(yield),
		TradeTimestamp: nullTimestamp(ts),
		Status:         nullString(status),
	}, nil
}

func scanDocument(row rowScanner) (domain.DocumentRecord, error) {
	var (
		id, loanID, docType, status sql.NullString
		confidence                  sql.NullFloat64
		uploaded                    sql.NullString
		size, pages                 sql.NullInt64
	)
	if err := row.Scan(&id, &loanID, &docType, &status, &confidence, &uploaded,
		&size, &pages); err != nil {
		return domain.DocumentRecord{}, err
	}

	return domain.DocumentRecord{
		DocumentID:         id.String,
		LoanID:             loanID.String,
		DocumentType:       nullString(docType),
		VerificationStatus: nullString(status),
		OCRConfidence:      nullFloat(confidence),
		UploadTimestamp:    nullTimestamp(uploaded),
		FileSizeKB:         nullInt(size),
		PageCount:          nullInt(pages),
	}, nil
}

func scanMonitoring(row rowScanner) (domain.MonitoringRecord, error) {
	var (
		loanID                        sql.NullString
		month                         sql.NullInt64
		date                          sql.NullString
		energy, carbon, renewable, es sql.NullFloat64
		inCompliance                  sql.NullBool
		projectStatus, dataSource     sql.NullString
	)
	if err := row.Scan(&loanID, &month, &date, &energy, &carbon, &renewable, &es,
		&inCompliance, &projectStatus, &dataSource); err != nil {
		return domain.MonitoringRecord{}, err
	}

	return domain.MonitoringRecord{
		LoanID:             loanID.String,
		Month:              int(month.Int64),
		MonitoringDate:     nullTimestamp(date),
		EnergySavingsPct:   nullFloat(energy),
		CarbonReductionPct: nullFloat(carbon),
		RenewableEnergyPct: nullFloat(renewable),
		ESGScore:           nullFloat(es),
		InCompliance:       nullBool(inCompliance),
		ProjectStatus:      nullString(projectStatus),
		DataSource:         nullString(dataSource),
	}, nil
}

func scanRateHistory(row rowScanner) (domain.RateHistoryEntry, error) {
	var (
		month                  sql.NullInt64
		date                   sql.NullString
		baseRate, adjustedRate sql.NullFloat64
		tier                   sql.NullString
		discount, carbon       sql.NullFloat64
	)
	if err := row.Scan(&month, &date, &baseRate, &adjustedRate, &tier, &discount, &carbon); err != nil {
		return domain.RateHistoryEntry{}, err
	}

	return domain.RateHistoryEntry{
		Month:              int(month.Int64),
		AdjustmentDate:     nullTimestamp(date),
		BaseRate:           baseRate.Float64,
		AdjustedRate:       adjustedRate.Float64,
		MilestoneTier:      nullString(tier),
		TotalDiscount:      nullFloat(discount),
		CarbonReductionPct: nullFloat(carbon),
	}, nil
}

func scanSavings(row rowScanner) (domain.SavingsRecord, error) {
	var (
		loanID                 string
		amount                 sql.NullFloat64
		term                   sql.NullInt64
		baseRate, adjustedRate float64
	)
	if err := row.Scan(&loanID, &amount, &term, &baseRate, &adjustedRate); err != nil {
		return domain.SavingsRecord{}, err
	}
	return ComputeSavings(loanID, amount.Float64, int(term.Int64), baseRate, adjustedRate), nil
}

func scanLedgerBlock(row rowScanner) (domain.LedgerBlock, error) {
	var (
		number                   int
		ts                       sql.NullString
		txType, txID             sql.NullString
		portfolio, seller, buyer sql.NullString
		amount                   sql.NullFloat64
		hash, previous, merkle   sql.NullString
		nonce                    sql.NullInt64
	)
	if err := row.Scan(&number, &ts, &txType, &txID, &portfolio, &seller, &buyer,
		&amount, &hash, &previous, &merkle, &nonce); err != nil {
		return domain.LedgerBlock{}, err
	}

	return domain.LedgerBlock{
		BlockNumber:     number,
		Timestamp:       nullTimestamp(ts),
		TransactionType: nullString(txType),
		TransactionID:   txID.String,
		PortfolioID:     nullString(portfolio),
		SellerID:        nullString(seller),
		BuyerID:         nullString(buyer),
		Amount:          nullFloat(amount),
		BlockHash:       hash.String,
		PreviousHash:    previous.String,
		MerkleRoot:      nullString(merkle),
		Nonce:           nullInt(nonce),
	}, nil
}
