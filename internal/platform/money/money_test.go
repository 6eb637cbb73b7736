package money

import "testing"

func TestParseDigits(t *testing.T) {
	cases := map[string]int64{
		"":                     0,
		"abc":                  0,
		"1,234,567":            1234567,
		" 12 000원":             12000,
		"-5,000":               5000,
		"007":                  7,
		"99999999999999999999": 0,
	}
	for raw, want := range cases {
		if got := ParseDigits(raw); got != want {
			t.Fatalf("ParseDigits(%q): expected %d, got %d", raw, want, got)
		}
	}
}

func TestGroup(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		70000000: "70,000,000",
	}
	for n, want := range cases {
		if got := Group(n); got != want {
			t.Fatalf("Group(%d): expected %q, got %q", n, want, got)
		}
	}
}

func TestWon(t *testing.T) {
	if got := Won(3000000); got != "3,000,000원" {
		t.Fatalf("expected 3,000,000원, got %q", got)
	}
}

func TestReformat(t *testing.T) {
	if got := Reformat("1234a5"); got != "12,345" {
		t.Fatalf("expected 12,345, got %q", got)
	}
	if got := Reformat("0"); got != "" {
		t.Fatalf("expected empty string for zero, got %q", got)
	}
	if got := Reformat(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
