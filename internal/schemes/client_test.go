package schemes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func validRequest() MatchRequest {
	return MatchRequest{
		Location:   "Karnataka",
		Occupation: "farmer",
		Category:   "agriculture",
		Income:     120000,
		Gender:     "female",
		Age:        42,
	}
}

func TestMatchRequestValidate(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	missing := validRequest()
	missing.Occupation = ""
	if err := missing.Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}

	tooOld := validRequest()
	tooOld.Age = 121
	if err := tooOld.Validate(); !errors.Is(err, ErrInvalidAge) {
		t.Fatalf("got %v, want ErrInvalidAge", err)
	}

	negative := validRequest()
	negative.Income = -1
	if err := negative.Validate(); !errors.Is(err, ErrInvalidIncome) {
		t.Fatalf("got %v, want ErrInvalidIncome", err)
	}
}

func TestMatchCallsService(t *testing.T) {
	var gotPath string
	var gotBody MatchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(MatchResponse{
			Matches: []SchemeMatch{{
				SchemeName:       "PM-KISAN",
				Ministry:         "Ministry of Agriculture",
				MatchScore:       0.91,
				KeywordScore:     0.8,
				SemanticScore:    0.95,
				RelevanceReasons: []string{"occupation match"},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	resp, err := client.Match(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	if gotPath != "/api/match-schemes" {
		t.Fatalf("called %q", gotPath)
	}
	if gotBody.Location != "Karnataka" || gotBody.Age != 42 {
		t.Fatalf("request body mismatch: %+v", gotBody)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].SchemeName != "PM-KISAN" {
		t.Fatalf("response mismatch: %+v", resp)
	}
	if s := resp.Matches[0].MatchScore; s < 0 || s > 1 {
		t.Fatalf("score out of range: %v", s)
	}
}

func TestMatchRejectsInvalidWithoutCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	req := validRequest()
	req.Location = ""
	if _, err := client.Match(context.Background(), req); err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Fatal("invalid request must not reach the service")
	}
}

func TestMatchSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.Match(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
