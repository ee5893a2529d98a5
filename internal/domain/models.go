// Package domain provides the record types read from the lending backend and
// the error taxonomy shared by the aggregation modules.
//
// Optional numeric fields are pointers: a nil value means the backend did not
// report it, which is never the same as zero.
package domain

// LoanRecord represents a loan application
type LoanRecord struct {
	LoanID               string    `json:"loan_id"`
	Approved             *bool     `json:"loan_approved"`
	FinancialHealthScore *float64  `json:"financial_health_score"`
	ESGCompositeScore    *float64  `json:"esg_composite_score"`
	CombinedCreditScore  *float64  `json:"combined_credit_score"`
	LoanAmount           *float64  `json:"loan_amount"`
	LoanTermMonths       *int      `json:"loan_term_months"`
	ProjectType          *string   `json:"project_type"`
	Country              *string   `json:"country"`
	ApplicationDate      Timestamp `json:"application_date"`
	ProcessingStatus     *string   `json:"processing_status,omitempty"`
}

// IsApproved reports whether the loan carries an explicit approval
func (l LoanRecord) IsApproved() bool {
	return l.Approved != nil && *l.Approved
}

// PortfolioRecord represents a tradeable bundle of loans
type PortfolioRecord struct {
	PortfolioID           string    `json:"portfolio_id"`
	SellerID              string    `json:"seller_id"`
	BuyerID               *string   `json:"buyer_id,omitempty"`
	LoanCount             *int      `json:"loan_count"`
	TotalValue            *float64  `json:"total_value"`
	PortfolioPrice        *float64  `json:"portfolio_price"`
	PortfolioYield        *float64  `json:"portfolio_yield"` // fraction, e.g. 0.065
	WeightedCreditScore   *float64  `json:"weighted_credit_score,omitempty"`
	WeightedESGScore      *float64  `json:"weighted_esg_score"`
	AvgCarbonReductionPct *float64  `json:"avg_carbon_reduction_pct,omitempty"`
	Status                *string   `json:"status"`
	CreationDate          Timestamp `json:"creation_date"`
}

// TradeRecord represents an executed portfolio trade
type TradeRecord struct {
	TradeID        string    `json:"trade_id"`
	PortfolioID    string    `json:"portfolio_id"`
	SellerID       string    `json:"seller_id"`
	BuyerID        string    `json:"buyer_id"`
	TradePrice     *float64  `json:"trade_price"`
	LoanCount      *int      `json:"loan_count"`
	PortfolioYield *float64  `json:"portfolio_yield,omitempty"`
	TradeTimestamp Timestamp `json:"trade_timestamp"`
	Status         *string   `json:"status"`
}

// DocumentRecord represents an uploaded loan document
type DocumentRecord struct {
	DocumentID         string    `json:"document_id"`
	LoanID             string    `json:"loan_id"`
	DocumentType       *string   `json:"document_type"`
	VerificationStatus *string   `json:"verification_status"`
	OCRConfidence      *float64  `json:"ocr_confidence"` // fraction in [0,1]
	UploadTimestamp    Timestamp `json:"upload_timestamp"`
	FileSizeKB         *int      `json:"file_size_kb"`
	PageCount          *int      `json:"page_count"`
}

// MonitoringRecord represents one month of covenant monitoring for a loan
type MonitoringRecord struct {
	LoanID             string    `json:"loan_id"`
	Month              int       `json:"month"`
	MonitoringDate     Timestamp `json:"monitoring_date"`
	EnergySavingsPct   *float64  `json:"energy_savings_pct"`
	CarbonReductionPct *float64  `json:"carbon_reduction_pct"`
	RenewableEnergyPct *float64  `json:"renewable_energy_pct"`
	ESGScore           *float64  `json:"esg_score"`
	InCompliance       *bool     `json:"in_compliance"`
	ProjectStatus      *string   `json:"project_status"`
	DataSource         *string   `json:"data_source"`
}

// AlertRecord is a compliance alert as reported by the backend
type AlertRecord struct {
	LoanID            string    `json:"loan_id"`
	MonitoringDate    Timestamp `json:"monitoring_date"`
	Severity          string    `json:"severity"`
	ViolationReasons  []string  `json:"violation_reasons"`
	RecommendedAction string    `json:"recommended_action"`
}

// RateAdjustment is the result of a backend rate calculation
type RateAdjustment struct {
	LoanID             string   `json:"loan_id"`
	BaseRate           float64  `json:"base_rate"`
	AdjustedRate       float64  `json:"adjusted_rate"`
	MilestoneTier      *string  `json:"milestone_tier"`
	MilestoneDiscount  *float64 `json:"milestone_discount,omitempty"`
	EnergyBonus        *float64 `json:"energy_bonus,omitempty"`
	RenewableBonus     *float64 `json:"renewable_bonus,omitempty"`
	TotalDiscount      float64  `json:"total_discount"`
	RateChangePct      float64  `json:"rate_change_pct"`
	CarbonReductionPct *float64 `json:"carbon_reduction_pct,omitempty"`
	EnergySavingsPct   *float64 `json:"energy_savings_pct,omitempty"`
	RenewableEnergyPct *float64 `json:"renewable_energy_pct,omitempty"`
}

// RateHistoryEntry is one stored rate adjustment for a loan
type RateHistoryEntry struct {
	Month              int       `json:"month"`
	AdjustmentDate     Timestamp `json:"adjustment_date"`
	BaseRate           float64   `json:"base_rate"`
	AdjustedRate       float64   `json:"adjusted_rate"`
	MilestoneTier      *string   `json:"milestone_tier"`
	TotalDiscount      *float64  `json:"total_discount"`
	CarbonReductionPct *float64  `json:"carbon_reduction_pct"`
}

// SavingsRecord is the borrower savings computed by the backend for one loan
type SavingsRecord struct {
	LoanID           string  `json:"loan_id"`
	LoanAmount       float64 `json:"loan_amount"`
	BaseInterest     float64 `json:"base_interest"`
	AdjustedInterest float64 `json:"adjusted_interest"`
	TotalSavings     float64 `json:"total_savings"`
	SavingsPct       float64 `json:"savings_pct"`
}

// LedgerBlock is one block of the platform's hash-chained transaction
// ledger. The chain fields are only present when read from the database.
type LedgerBlock struct {
	BlockNumber     int       `json:"block_number"`
	Timestamp       Timestamp `json:"timestamp"`
	TransactionType *string   `json:"transaction_type"`
	TransactionID   string    `json:"transaction_id"`
	PortfolioID     *string   `json:"portfolio_id"`
	SellerID        *string   `json:"seller_id,omitempty"`
	BuyerID         *string   `json:"buyer_id,omitempty"`
	Amount          *float64  `json:"amount"`
	BlockHash       string    `json:"block_hash"`
	PreviousHash    string    `json:"previous_hash,omitempty"`
	MerkleRoot      *string   `json:"merkle_root,omitempty"`
	Nonce           *int      `json:"nonce,omitempty"`
}

// LedgerValidation is the verdict of a ledger chain check
type LedgerValidation struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

// Bucket is a counted half-open interval [Lo, Hi)
type Bucket struct {
	Label string  `json:"label"`
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }
