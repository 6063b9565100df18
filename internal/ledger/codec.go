package ledger

import (
	"encoding/json"
	"fmt"

	"fintrack/internal/core"
)

// The four persisted keys. Their encoded forms are the durable wire
// format: expenses and financialGoal are JSON, the two scalars are
// string-encoded numbers.
const (
	KeyExpenses       = "expenses"
	KeyMonthlyExpense = "monthlyExpense"
	KeyCurrentSavings = "currentSavings"
	KeyFinancialGoal  = "financialGoal"
)

func encodeRecords(records []core.ExpenseRecord) (string, error) {
	if records == nil {
		records = []core.ExpenseRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return string(data), nil
}

func decodeRecords(value string) ([]core.ExpenseRecord, error) {
	var records []core.ExpenseRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func encodeGoal(goal core.FinancialGoal) (string, error) {
	data, err := json.Marshal(goal)
	if err != nil {
		return "", fmt.Errorf("encode goal: %w", err)
	}
	return string(data), nil
}

func decodeGoal(value string) (core.FinancialGoal, error) {
	var goal core.FinancialGoal
	if err := json.Unmarshal([]byte(value), &goal); err != nil {
		return core.FinancialGoal{}, fmt.Errorf("decode goal: %w", err)
	}
	return goal, nil
}

func encodeMoney(m core.Money) string {
	return m.String()
}

func decodeMoney(value string) (core.Money, error) {
	m, err := core.ParseAmount(value)
	if err != nil {
		return core.Money{}, fmt.Errorf("decode amount %q: %w", value, err)
	}
	return m, nil
}
