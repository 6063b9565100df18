// Package report calls the external report-generation service, a
// black box that turns a budget summary into a financial report.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Request is the budget summary sent for analysis.
type Request struct {
	Income   float64            `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
	Savings  float64            `json:"savings"`
	Goals    []string           `json:"goals"`
}

// Report mirrors the service's response. FinancialAnalysis and the
// per-plan details are passed through untouched; their shape belongs
// to the service, not to us.
type Report struct {
	FinancialAnalysis  json.RawMessage     `json:"financial_analysis"`
	SavingsPlans       []SavingsPlan       `json:"savings_plans"`
	AssistancePrograms []AssistanceProgram `json:"assistance_programs"`
}

type SavingsPlan struct {
	Goal string          `json:"goal"`
	Plan json.RawMessage `json:"plan"`
}

type AssistanceProgram struct {
	ProgramName string `json:"program_name"`
	Description string `json:"description"`
}

type Response struct {
	Report Report `json:"report"`
}

var ErrNoExpenses = errors.New("at least one expense amount is required")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate submits the summary and returns the generated report.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(req.Expenses) == 0 {
		return nil, ErrNoExpenses
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/generate-report", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call report service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report service returned %s", resp.Status)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
