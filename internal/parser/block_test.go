package parser

import (
	"strings"
	"testing"
)

func newBlockStrategy() *blockStrategy {
	return &blockStrategy{dates: DateInterpreter{}, classifier: newClassifier(DefaultVocabulary())}
}

func TestBlockStrategy_ParsesChunks(t *testing.T) {
	s := newBlockStrategy()
	text := strings.Join([]string{
		"15/01/2024",
		"CARD PURCHASE COSTA",
		"4.50",
		"120.00",
		"",
		"16/01/2024",
		"FASTER PAYMENT RECEIVED",
		"250.00",
		"370.00",
	}, "\n")

	txns := s.Extract(text)
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}

	first := txns[0]
	if first.Date != "2024-01-15" {
		t.Errorf("date: got %q, want 2024-01-15", first.Date)
	}
	if first.Description != "CARD PURCHASE COSTA" {
		t.Errorf("description: got %q", first.Description)
	}
	if first.Debit == nil || first.Debit.String() != "4.5" {
		t.Errorf("debit: got %v, want 4.5", first.Debit)
	}
	if first.Balance == nil || first.Balance.String() != "120" {
		t.Errorf("balance: got %v, want 120", first.Balance)
	}
}

func TestBlockStrategy_ExcludesBlocksWithoutDate(t *testing.T) {
	s := newBlockStrategy()
	text := "TOTAL PAID OUT\n999.99\n\n15/01/2024\nGROCERIES STORE\n45.00"

	txns := s.Extract(text)
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Date != "2024-01-15" {
		t.Errorf("date: got %q, want 2024-01-15", txns[0].Date)
	}
}

func TestBlockStrategy_SkipsBlocksWithoutAmounts(t *testing.T) {
	s := newBlockStrategy()
	text := "Statement period 01/01/2024 to 31/01/2024\nNo activity this month"

	if txns := s.Extract(text); len(txns) != 0 {
		t.Errorf("expected no transactions, got %d", len(txns))
	}
}

func TestBlockStrategy_PlaceholderDescriptionLeftToCleaner(t *testing.T) {
	s := newBlockStrategy()
	txns := s.Extract("15/01/2024 75.00")

	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Description != "" {
		t.Errorf("description: got %q, want empty (cleaner applies placeholder)", txns[0].Description)
	}
}
