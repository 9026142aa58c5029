package parser

import (
	"sort"
	"strings"

	"github.com/ledgerlift/statement-converter/internal/models"
)

// DefaultDescription is the placeholder used when no description text could
// be recovered for a record.
const DefaultDescription = "Transaction"

// cleanRecords validates and orders raw candidates: records without a date
// are dropped, descriptions are whitespace-normalized (placeholder when
// empty), duplicates on (date, description, debit, credit) are discarded
// keeping the first occurrence, and the result is stably sorted by
// ascending date so ties preserve discovery order.
func cleanRecords(raw []models.Transaction) []models.Transaction {
	cleaned := make([]models.Transaction, 0, len(raw))
	seen := map[string]bool{}

	for _, txn := range raw {
		if txn.Date == "" {
			continue
		}
		txn.Description = strings.Join(strings.Fields(txn.Description), " ")
		if txn.Description == "" {
			txn.Description = DefaultDescription
		}
		key := dedupeKey(txn)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, txn)
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date < cleaned[j].Date
	})
	return cleaned
}

func dedupeKey(txn models.Transaction) string {
	var b strings.Builder
	b.WriteString(txn.Date)
	b.WriteByte('|')
	b.WriteString(txn.Description)
	b.WriteByte('|')
	if txn.Debit != nil {
		b.WriteString(txn.Debit.String())
	}
	b.WriteByte('|')
	if txn.Credit != nil {
		b.WriteString(txn.Credit.String())
	}
	return b.String()
}
