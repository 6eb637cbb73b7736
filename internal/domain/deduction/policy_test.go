package deduction

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultPolicyIsValid(t *testing.T) {
	p := DefaultPolicy()
	if err := p.Validate(); err != nil {
		t.Fatalf("expected default policy to validate, got %v", err)
	}
	if !p.Rates.For(CategoryTransport).Equal(decimal.RequireFromString("0.8")) {
		t.Fatalf("expected transport rate 0.8, got %s", p.Rates.For(CategoryTransport))
	}
}

func TestBracketFor(t *testing.T) {
	p := DefaultPolicy()
	bracket, limits := p.BracketFor(70_000_000)
	if bracket != BracketLow || limits != (Limits{Basic: 3_000_000, Extra: 3_000_000}) {
		t.Fatalf("unexpected low bracket: %s %+v", bracket, limits)
	}
	bracket, limits = p.BracketFor(70_000_001)
	if bracket != BracketHigh || limits != (Limits{Basic: 2_500_000, Extra: 2_000_000}) {
		t.Fatalf("unexpected high bracket: %s %+v", bracket, limits)
	}
}

func TestPolicyValidateRejects(t *testing.T) {
	cases := map[string]func(p *Policy){
		"zero threshold":  func(p *Policy) { p.ThresholdRate = decimal.Zero },
		"rate above one":  func(p *Policy) { p.Rates.Culture = decimal.RequireFromString("1.5") },
		"negative rate":   func(p *Policy) { p.Rates.Check = decimal.RequireFromString("-0.1") },
		"no ceiling":      func(p *Policy) { p.LowCeiling = 0 },
		"negative limits": func(p *Policy) { p.High.Extra = -1 },
	}
	for name, mutate := range cases {
		p := DefaultPolicy()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("%s: expected ErrInvalidPolicy, got %v", name, err)
		}
	}
}

func TestLoadPolicyOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `name: test-snapshot
rates:
  credit: 0.2
high:
  basic: 1000000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if p.Name != "test-snapshot" {
		t.Fatalf("expected name test-snapshot, got %q", p.Name)
	}
	if !p.Rates.Credit.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("expected credit rate 0.2, got %s", p.Rates.Credit)
	}
	if !p.Rates.Check.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("expected default check rate kept, got %s", p.Rates.Check)
	}
	if p.High.Basic != 1_000_000 || p.High.Extra != 2_000_000 {
		t.Fatalf("unexpected high limits: %+v", p.High)
	}
}

func TestLoadPolicyErrors(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threshold_rate: 2\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	if _, err := LoadPolicy(path); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}
