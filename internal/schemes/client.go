// Package schemes calls the external government-scheme-matching
// service. The service is a black box reached over HTTP; this client
// only validates the request shape and decodes the response.
package schemes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// MatchRequest is the profile submitted for matching. All fields are
// required.
type MatchRequest struct {
	Location   string  `json:"location"`
	Occupation string  `json:"occupation"`
	Category   string  `json:"category"`
	Income     float64 `json:"income"`
	Gender     string  `json:"gender"`
	Age        int     `json:"age"`
}

// SchemeMatch is one matched scheme. Scores are fractional in [0,1].
type SchemeMatch struct {
	SchemeName       string   `json:"scheme_name"`
	Ministry         string   `json:"ministry"`
	MatchScore       float64  `json:"match_score"`
	KeywordScore     float64  `json:"keyword_score"`
	SemanticScore    float64  `json:"semantic_score"`
	Objective        string   `json:"objective"`
	Beneficiary      string   `json:"beneficiary"`
	Features         string   `json:"features"`
	RelevanceReasons []string `json:"relevance_reasons"`
}

type MatchResponse struct {
	Matches []SchemeMatch `json:"matches"`
}

var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidAge    = errors.New("age must be between 0 and 120")
	ErrInvalidIncome = errors.New("income must not be negative")
)

// Validate checks the request before it leaves the process so the user
// gets a local error instead of a round trip.
func (r MatchRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"location", r.Location},
		{"occupation", r.Occupation},
		{"category", r.Category},
		{"gender", r.Gender},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if r.Age < 0 || r.Age > 120 {
		return ErrInvalidAge
	}
	if r.Income < 0 {
		return ErrInvalidIncome
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the matching service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Match submits the profile and returns the matched schemes.
func (c *Client) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/match-schemes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call scheme service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scheme service returned %s", resp.Status)
	}

	var out MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
