package sqlstore

import (
	"database/sql"
	"strings"

	"github.com/aristath/ecoledger/internal/domain"
)

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return domain.Float(v.Float64)
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return domain.Int(int(v.Int64))
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return domain.String(v.String)
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return domain.Bool(v.Bool)
}

// nullTimestamp parses a stored timestamp; unparseable values become undefined
func nullTimestamp(v sql.NullString) domain.Timestamp {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return domain.Timestamp{}
	}
	ts, err := domain.ParseTimestamp(v.String)
	if err != nil {
		return domain.Timestamp{}
	}
	return ts
}
