// Package ledger checks the hash chain of the platform's transaction ledger.
package ledger

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/ecoledger/internal/domain"
)

// GenesisHash is the previous hash recorded on the first block
var GenesisHash = strings.Repeat("0", 64)

// Validation messages
const (
	MessageEmpty = "Chain is empty"
	MessageValid = "Chain is valid"
)

// BlockHash computes the SHA-256 hex digest of a block's content: block
// number, naive ISO timestamp, transaction type and id, previous hash,
// merkle root and nonce, concatenated without separators. Missing optional
// fields are written as "None", the way the backend renders them.
func BlockHash(b domain.LedgerBlock) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(b.BlockNumber))
	sb.WriteString(isoformat(b.Timestamp.Time))
	sb.WriteString(orNone(b.TransactionType))
	sb.WriteString(b.TransactionID)
	sb.WriteString(b.PreviousHash)
	sb.WriteString(orNone(b.MerkleRoot))
	if b.Nonce != nil {
		sb.WriteString(strconv.Itoa(*b.Nonce))
	} else {
		sb.WriteString("None")
	}

	return fmt.Sprintf("%x", sha256.Sum256([]byte(sb.String())))
}

// ValidateChain walks the blocks in block number order and checks that each
// block links to its predecessor and that its stored hash matches its
// content. The first block is trusted as the chain's anchor.
func ValidateChain(blocks []domain.LedgerBlock) domain.LedgerValidation {
	if len(blocks) == 0 {
		return domain.LedgerValidation{IsValid: true, Message: MessageEmpty}
	}

	ordered := make([]domain.LedgerBlock, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BlockNumber < ordered[j].BlockNumber
	})

	for i := 1; i < len(ordered); i++ {
		current, previous := ordered[i], ordered[i-1]

		if current.PreviousHash != previous.BlockHash {
			return domain.LedgerValidation{
				Message: fmt.Sprintf("Block %d has invalid previous_hash", current.BlockNumber),
			}
		}
		if BlockHash(current) != current.BlockHash {
			return domain.LedgerValidation{
				Message: fmt.Sprintf("Block %d has invalid hash", current.BlockNumber),
			}
		}
	}

	return domain.LedgerValidation{IsValid: true, Message: MessageValid}
}

// isoformat renders t in UTC without zone, with microseconds only when
// non-zero
func isoformat(t time.Time) string {
	t = t.UTC()
	out := t.Format("2006-01-02T15:04:05")
	if micro := t.Nanosecond() / 1000; micro != 0 {
		out += fmt.Sprintf(".%06d", micro)
	}
	return out
}

func orNone(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}
