package stats

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func rec(amount int64, category string, date core.Date) core.ExpenseRecord {
	return core.ExpenseRecord{
		ID:       category + date.Format("20060102"),
		Amount:   core.Money{Cents: amount},
		Category: category,
		Date:     date,
	}
}

func TestComputeCategoryTotals(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	today := core.DateOf(now)

	records := []core.ExpenseRecord{
		rec(10000, "food", today),
		rec(5000, "food", today),
		rec(3000, "transport", today),
	}

	s := Compute(records, now)

	if s.TotalExpenses.Cents != 18000 {
		t.Fatalf("TotalExpenses = %d, want 18000", s.TotalExpenses.Cents)
	}
	if got := s.CategoryTotals["food"].Cents; got != 15000 {
		t.Fatalf("food total = %d, want 15000", got)
	}
	if got := s.CategoryTotals["transport"].Cents; got != 3000 {
		t.Fatalf("transport total = %d, want 3000", got)
	}
	if len(s.CategoryTotals) != 2 {
		t.Fatalf("unexpected categories: %v", s.CategoryTotals)
	}
}

func TestComputeCategorySumMatchesTotal(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	records := []core.ExpenseRecord{
		rec(199, "food", core.NewDate(2026, 8, 29)),
		rec(2550, "utilities", core.NewDate(2026, 7, 1)),
		rec(31, "food", core.NewDate(2026, 3, 15)),
		rec(1, "entertainment", core.NewDate(2025, 12, 31)),
	}

	s := Compute(records, now)

	var sum int64
	for _, m := range s.CategoryTotals {
		sum += m.Cents
	}
	if sum != s.TotalExpenses.Cents {
		t.Fatalf("sum(CategoryTotals) = %d, TotalExpenses = %d", sum, s.TotalExpenses.Cents)
	}
}

func TestComputeWeeklyWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC) // a Sunday

	records := []core.ExpenseRecord{
		rec(100, "food", core.NewDate(2026, 8, 30)),      // today
		rec(200, "food", core.NewDate(2026, 8, 23)),      // exactly 7 days ago, inclusive
		rec(400, "transport", core.NewDate(2026, 8, 22)), // 8 days ago, excluded
	}

	s := Compute(records, now)

	if s.WeeklyTotal.Cents != 300 {
		t.Fatalf("WeeklyTotal = %d, want 300", s.WeeklyTotal.Cents)
	}
	if got := s.WeeklyCategoryTotals["food"].Cents; got != 300 {
		t.Fatalf("weekly food = %d, want 300", got)
	}
	if _, ok := s.WeeklyCategoryTotals["transport"]; ok {
		t.Fatal("transport should be outside the weekly window")
	}

	// Weekly total always equals the sum of the daily map.
	var daily int64
	for _, m := range s.DailyTotals {
		daily += m.Cents
	}
	if daily != s.WeeklyTotal.Cents {
		t.Fatalf("sum(DailyTotals) = %d, WeeklyTotal = %d", daily, s.WeeklyTotal.Cents)
	}
}

func TestComputeDailyTotalsOmitsQuietDays(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	records := []core.ExpenseRecord{
		rec(500, "food", core.NewDate(2026, 8, 28)), // a Friday
	}

	s := Compute(records, now)

	if len(s.DailyTotals) != 1 {
		t.Fatalf("DailyTotals should only list active days: %v", s.DailyTotals)
	}
	if got := s.DailyTotals["Fri"].Cents; got != 500 {
		t.Fatalf("Fri = %d, want 500", got)
	}
}

func TestMonthlyTrendShape(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	records := []core.ExpenseRecord{
		rec(1000, "food", core.NewDate(2026, 8, 1)),
		rec(2000, "food", core.NewDate(2026, 6, 10)),
		rec(9999, "food", core.NewDate(2026, 1, 1)), // outside the window
	}

	trend := MonthlyTrend(records, now)

	if len(trend) != TrendMonths {
		t.Fatalf("trend has %d buckets, want %d", len(trend), TrendMonths)
	}

	wantLabels := []string{"Mar 2026", "Apr 2026", "May 2026", "Jun 2026", "Jul 2026", "Aug 2026"}
	for i, b := range trend {
		if b.Label != wantLabels[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, b.Label, wantLabels[i])
		}
	}

	byLabel := make(map[string]int64)
	for _, b := range trend {
		byLabel[b.Label] = b.Amount.Cents
	}
	if byLabel["Aug 2026"] != 1000 || byLabel["Jun 2026"] != 2000 {
		t.Fatalf("unexpected amounts: %v", byLabel)
	}
	if byLabel["Mar 2026"] != 0 || byLabel["Jul 2026"] != 0 {
		t.Fatal("quiet months must be present and zero")
	}
}

func TestMonthlyTrendCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	trend := MonthlyTrend(nil, now)

	wantLabels := []string{"Sep 2025", "Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026"}
	for i, b := range trend {
		if b.Label != wantLabels[i] {
			t.Fatalf("bucket %d label = %q, want %q", i, b.Label, wantLabels[i])
		}
		if b.Amount.Cents != 0 {
			t.Fatalf("bucket %q should be zero", b.Label)
		}
	}
}

func TestComputeEmptyLedger(t *testing.T) {
	s := Compute(nil, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))

	if s.TotalExpenses.Cents != 0 || s.WeeklyTotal.Cents != 0 {
		t.Fatalf("expected zero totals: %+v", s)
	}
	if len(s.CategoryTotals) != 0 || len(s.DailyTotals) != 0 || len(s.WeeklyCategoryTotals) != 0 {
		t.Fatalf("expected empty maps: %+v", s)
	}
	if len(s.MonthlyTrend) != TrendMonths {
		t.Fatalf("empty ledger still gets %d trend buckets, got %d", TrendMonths, len(s.MonthlyTrend))
	}
	if s.TopCategory != "" {
		t.Fatalf("TopCategory should be empty, got %q", s.TopCategory)
	}
}

func TestTopCategory(t *testing.T) {
	totals := map[string]core.Money{
		"food":      {Cents: 300},
		"transport": {Cents: 100},
	}
	if got := TopCategory(totals); got != "food" {
		t.Fatalf("got %q, want food", got)
	}
}

func TestTopCategoryTieBreaksLexicographically(t *testing.T) {
	totals := map[string]core.Money{
		"shopping": {Cents: 500},
		"food":     {Cents: 500},
		"misc":     {Cents: 100},
	}
	if got := TopCategory(totals); got != "food" {
		t.Fatalf("got %q, want food (lexicographic tie-break)", got)
	}
}
