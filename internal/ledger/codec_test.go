package ledger

import (
	"testing"

	"fintrack/internal/core"
)

func TestRecordsRoundTrip(t *testing.T) {
	cases := [][]core.ExpenseRecord{
		nil,
		{},
		{
			{ID: "a", Amount: core.Money{Cents: 250000}, Category: "food", Description: "Monthly groceries", Date: core.NewDate(2024, 10, 20)},
		},
		{
			{ID: "a", Amount: core.Money{Cents: 1}, Category: "चाय & नाश्ता", Date: core.NewDate(2026, 1, 1)},
			{ID: "b", Amount: core.Money{Cents: 0}, Category: `caffè "doppio"`, Description: "πρωινό", Date: core.NewDate(2026, 2, 28)},
			{ID: "c", Amount: core.Money{Cents: 999999}, Category: "🏠 rent/utilities", Date: core.NewDate(2025, 12, 31)},
		},
	}

	for i, records := range cases {
		encoded, err := encodeRecords(records)
		if err != nil {
			t.Fatalf("case %d encode: %v", i, err)
		}
		decoded, err := decodeRecords(encoded)
		if err != nil {
			t.Fatalf("case %d decode: %v", i, err)
		}
		if len(decoded) != len(records) {
			t.Fatalf("case %d: %d records, want %d", i, len(decoded), len(records))
		}
		for j := range records {
			want, got := records[j], decoded[j]
			if got.ID != want.ID || got.Amount != want.Amount ||
				got.Category != want.Category || got.Description != want.Description ||
				!got.Date.Equal(want.Date.Time) {
				t.Fatalf("case %d record %d mismatch:\n got %+v\nwant %+v", i, j, got, want)
			}
		}
	}
}

func TestGoalRoundTrip(t *testing.T) {
	goal := core.FinancialGoal{Description: "emergency fund — 6 months", Amount: core.Money{Cents: 3000000}}

	encoded, err := encodeGoal(goal)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := decodeGoal(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != goal {
		t.Fatalf("got %+v, want %+v", decoded, goal)
	}
}

func TestDecodeRejectsCorruptValues(t *testing.T) {
	if _, err := decodeRecords(`{"not":"an array"`); err == nil {
		t.Fatal("expected error for corrupt records")
	}
	if _, err := decodeGoal(`[1,2,3`); err == nil {
		t.Fatal("expected error for corrupt goal")
	}
	if _, err := decodeMoney("not a number"); err == nil {
		t.Fatal("expected error for corrupt amount")
	}
}

func TestMoneyStringEncoding(t *testing.T) {
	// The scalar keys are persisted as string-encoded numbers.
	if got := encodeMoney(core.Money{Cents: 2000000}); got != "20000.00" {
		t.Fatalf("got %q", got)
	}
	m, err := decodeMoney("20000.00")
	if err != nil || m.Cents != 2000000 {
		t.Fatalf("decode: %v %d", err, m.Cents)
	}
}
