package core

import "testing"

func TestAmountFromDigits(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"12345", 123.45},
		{"1", 0.01},
		{"", 0},
		{"abc", 0},
		{"R$ 1.234,56", 1234.56},
		{"0005", 0.05},
		{"1234567890123456", 1234567890.12}, // capped at 12 digits
	}
	for _, tc := range cases {
		if got := AmountFromDigits(tc.in); got != tc.out {
			t.Errorf("AmountFromDigits(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{123.45, "123,45"},
		{0, "0,00"},
		{1234.5, "1.234,50"},
		{1234567.89, "1.234.567,89"},
		{-42.1, "-42,10"},
		{0.05, "0,05"},
		{1000, "1.000,00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.out {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestKeystrokeRoundTrip(t *testing.T) {
	// "12345" typed in the form stores 123.45 and renders "123,45".
	amount := AmountFromDigits("12345")
	if amount != 123.45 {
		t.Fatalf("stored amount = %v, want 123.45", amount)
	}
	if got := FormatAmount(amount); got != "123,45" {
		t.Fatalf("displayed = %q, want %q", got, "123,45")
	}
	if back := ParseAmount(FormatAmount(amount)); back != amount {
		t.Fatalf("parse(format(%v)) = %v", amount, back)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"123,45", 123.45},
		{"1.234,56", 1234.56},
		{"", 0},
		{"garbage", 0}, // silent fallback, by contract
		{"50,00", 50},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.out {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.out)
		}
	}
}
