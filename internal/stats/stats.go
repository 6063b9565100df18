// Package stats derives dashboard analytics from the ledger's records.
//
// Every function here is pure: it reads a record slice and a reference
// "now" and returns fresh values. Nothing is cached across mutations;
// memoization, if any, is the consumer's job.
package stats

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// MonthBucket is one point of the rolling six-month trend.
type MonthBucket struct {
	Label  string     `json:"label"` // e.g. "Mar 2026"
	Amount core.Money `json:"amount"`
}

// Snapshot holds every derived statistic for one record set at one instant.
type Snapshot struct {
	TotalExpenses        core.Money            `json:"totalExpenses"`
	CategoryTotals       map[string]core.Money `json:"categoryTotals"`
	DailyTotals          map[string]core.Money `json:"dailyTotals"`
	WeeklyCategoryTotals map[string]core.Money `json:"weeklyCategoryTotals"`
	WeeklyTotal          core.Money            `json:"weeklyTotal"`
	MonthlyTrend         []MonthBucket         `json:"monthlyTrend"`
	TopCategory          string                `json:"topCategory,omitempty"`
}

// TrendMonths is the width of the rolling monthly trend window.
const TrendMonths = 6

// Compute derives a full Snapshot from the records as of now.
func Compute(records []core.ExpenseRecord, now time.Time) Snapshot {
	s := Snapshot{
		CategoryTotals:       make(map[string]core.Money),
		DailyTotals:          make(map[string]core.Money),
		WeeklyCategoryTotals: make(map[string]core.Money),
	}

	// Weekly window: day granularity, inclusive at exactly seven days prior.
	cutoff := core.DateOf(now).AddDate(0, 0, -7)

	for _, rec := range records {
		s.TotalExpenses = s.TotalExpenses.Add(rec.Amount)
		s.CategoryTotals[rec.Category] = s.CategoryTotals[rec.Category].Add(rec.Amount)

		if !rec.Date.Before(cutoff) {
			day := rec.Date.Format("Mon")
			s.DailyTotals[day] = s.DailyTotals[day].Add(rec.Amount)
			s.WeeklyCategoryTotals[rec.Category] = s.WeeklyCategoryTotals[rec.Category].Add(rec.Amount)
			s.WeeklyTotal = s.WeeklyTotal.Add(rec.Amount)
		}
	}

	s.MonthlyTrend = MonthlyTrend(records, now)
	s.TopCategory = TopCategory(s.CategoryTotals)
	return s
}

// MonthlyTrend builds the rolling six-month view: the current calendar
// month and the five preceding it, oldest first. Months with no
// activity still appear, pre-seeded to zero.
func MonthlyTrend(records []core.ExpenseRecord, now time.Time) []MonthBucket {
	trend := make([]MonthBucket, 0, TrendMonths)
	months := make(map[string]int, TrendMonths)

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := TrendMonths - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		label := m.Format("Jan 2006")
		months[label] = len(trend)
		trend = append(trend, MonthBucket{Label: label})
	}

	for _, rec := range records {
		label := rec.Date.Format("Jan 2006")
		if idx, ok := months[label]; ok {
			trend[idx].Amount = trend[idx].Amount.Add(rec.Amount)
		}
	}

	return trend
}

// TopCategory returns the category with the highest total. Ties break
// lexicographically on the category name so the result is deterministic
// regardless of map iteration order. Empty input yields "".
func TopCategory(totals map[string]core.Money) string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	var top string
	var best int64
	for _, name := range names {
		if cents := totals[name].Cents; top == "" || cents > best {
			top = name
			best = cents
		}
	}
	return top
}
