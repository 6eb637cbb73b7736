package deduction

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type RateTable struct {
	Credit    decimal.Decimal `yaml:"credit" json:"credit"`
	Check     decimal.Decimal `yaml:"check" json:"check"`
	Cash      decimal.Decimal `yaml:"cash" json:"cash"`
	Market    decimal.Decimal `yaml:"market" json:"market"`
	Transport decimal.Decimal `yaml:"transport" json:"transport"`
	Culture   decimal.Decimal `yaml:"culture" json:"culture"`
}

func (t RateTable) For(c Category) decimal.Decimal {
	switch c {
	case CategoryCredit:
		return t.Credit
	case CategoryCheck:
		return t.Check
	case CategoryCash:
		return t.Cash
	case CategoryMarket:
		return t.Market
	case CategoryTransport:
		return t.Transport
	case CategoryCulture:
		return t.Culture
	}
	return decimal.Zero
}

// Limits caps the aggregated basic and extra deductions of one bracket.
type Limits struct {
	Basic int64 `yaml:"basic" json:"basic"`
	Extra int64 `yaml:"extra" json:"extra"`
}

// Policy is one snapshot of the rate and limit table.
type Policy struct {
	Name          string          `yaml:"name" json:"name"`
	ThresholdRate decimal.Decimal `yaml:"threshold_rate" json:"thresholdRate"`
	Rates         RateTable       `yaml:"rates" json:"rates"`
	// Salaries up to and including LowCeiling use the Low limits.
	LowCeiling int64  `yaml:"low_ceiling" json:"lowCeiling"`
	Low        Limits `yaml:"low" json:"low"`
	High       Limits `yaml:"high" json:"high"`
}

func DefaultPolicy() Policy {
	return Policy{
		Name:          "default",
		ThresholdRate: decimal.RequireFromString("0.25"),
		Rates: RateTable{
			Credit:    decimal.RequireFromString("0.15"),
			Check:     decimal.RequireFromString("0.30"),
			Cash:      decimal.RequireFromString("0.30"),
			Market:    decimal.RequireFromString("0.50"),
			Transport: decimal.RequireFromString("0.80"),
			Culture:   decimal.RequireFromString("0.40"),
		},
		LowCeiling: 70_000_000,
		Low:        Limits{Basic: 3_000_000, Extra: 3_000_000},
		High:       Limits{Basic: 2_500_000, Extra: 2_000_000},
	}
}

func (p Policy) BracketFor(salary int64) (Bracket, Limits) {
	if salary <= p.LowCeiling {
		return BracketLow, p.Low
	}
	return BracketHigh, p.High
}

func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)
	if !p.ThresholdRate.IsPositive() || p.ThresholdRate.GreaterThan(one) {
		return fmt.Errorf("%w: threshold_rate must be in (0, 1]", ErrInvalidPolicy)
	}
	for _, c := range Categories() {
		rate := p.Rates.For(c)
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%w: rate for %s must be in [0, 1]", ErrInvalidPolicy, c)
		}
	}
	if p.LowCeiling <= 0 {
		return fmt.Errorf("%w: low_ceiling must be positive", ErrInvalidPolicy)
	}
	if p.Low.Basic < 0 || p.Low.Extra < 0 || p.High.Basic < 0 || p.High.Extra < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// LoadPolicy reads a YAML snapshot from path. Fields missing from the file
// keep their DefaultPolicy values.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
		}
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	if err := yaml.Unmarshal(b, &policy); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}
