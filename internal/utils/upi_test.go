package utils

import (
	"strings"
	"testing"
)

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink("fund@upi", "Chit Fund Savings", 10, "Week 3 Payment - Asha")

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("unexpected scheme: %s", link)
	}
	for _, want := range []string{
		"pa=fund%40upi",
		"pn=Chit+Fund+Savings",
		"am=10.00",
		"cu=INR",
		"tn=Week+3+Payment+-+Asha",
	} {
		if !strings.Contains(link, want) {
			t.Errorf("link missing %q: %s", want, link)
		}
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rs 0.00"},
		{10, "Rs 10.00"},
		{1234.5, "Rs 1,234.50"},
		{-480, "-Rs 480.00"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
