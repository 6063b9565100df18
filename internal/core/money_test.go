package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		err   error
	}{
		{"12.34", 1234, nil},
		{"12,34", 1234, nil},
		{"12.345", 1235, nil}, // rounds up
		{"12.344", 1234, nil}, // rounds down
		{"0", 0, nil},
		{"0.00", 0, nil},
		{".5", 50, nil},
		{"100", 10000, nil},
		{"", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
		{"1.2.3", 0, ErrInvalidAmount},
		{"12x", 0, ErrInvalidAmount},
		{"-3", 0, ErrNegativeAmount},
		{"-0.01", 0, ErrNegativeAmount},
		{"-", 0, ErrInvalidAmount},
		{"1.٣", 0, ErrInvalidAmount}, // non-ASCII digits must not coerce
		{"١٢", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseAmount(%q) error = %v, want %v", tc.in, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{1234, "12.34"},
		{2000000, "20000.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 123456} {
		in := Money{Cents: cents}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out Money
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if out != in {
			t.Fatalf("round trip %d cents -> %d", in.Cents, out.Cents)
		}
	}
}

func TestMoneyUnmarshalNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`2500`), &m); err != nil {
		t.Fatalf("unmarshal bare number: %v", err)
	}
	if m.Cents != 250000 {
		t.Fatalf("got %d cents, want 250000", m.Cents)
	}
}
