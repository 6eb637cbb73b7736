package deduction

import "github.com/shopspring/decimal"

// Input holds the salary and the six spending totals, in whole currency units.
type Input struct {
	Salary    int64 `json:"salary"`
	Credit    int64 `json:"creditSpend"`
	Check     int64 `json:"checkSpend"`
	Cash      int64 `json:"cashSpend"`
	Market    int64 `json:"marketSpend"`
	Transport int64 `json:"transportSpend"`
	Culture   int64 `json:"cultureSpend"`
}

func (in Input) Spend(c Category) int64 {
	switch c {
	case CategoryCredit:
		return in.Credit
	case CategoryCheck:
		return in.Check
	case CategoryCash:
		return in.Cash
	case CategoryMarket:
		return in.Market
	case CategoryTransport:
		return in.Transport
	case CategoryCulture:
		return in.Culture
	}
	return 0
}

// Normalized zeroes every field outside [0, MaxAmount].
func (in Input) Normalized() Input {
	return Input{
		Salary:    clampAmount(in.Salary),
		Credit:    clampAmount(in.Credit),
		Check:     clampAmount(in.Check),
		Cash:      clampAmount(in.Cash),
		Market:    clampAmount(in.Market),
		Transport: clampAmount(in.Transport),
		Culture:   clampAmount(in.Culture),
	}
}

type BreakdownRow struct {
	Category Category        `json:"category"`
	Label    string          `json:"label"`
	Spend    int64           `json:"spend"`
	Eligible int64           `json:"eligibleAmount"`
	Rate     decimal.Decimal `json:"rate"`
	Credit   int64           `json:"creditAmount"`
}

type Result struct {
	Salary    int64          `json:"salary"`
	Threshold int64          `json:"threshold"`
	Bracket   Bracket        `json:"bracket"`
	Limits    Limits         `json:"limits"`
	BasicRaw  int64          `json:"basicDeductionRaw"`
	ExtraRaw  int64          `json:"extraDeductionRaw"`
	Basic     int64          `json:"basicDeduction"`
	Extra     int64          `json:"extraDeduction"`
	Total     int64          `json:"totalDeduction"`
	Breakdown []BreakdownRow `json:"breakdown"`
}

// Row returns the breakdown row for c.
func (r Result) Row(c Category) (BreakdownRow, bool) {
	for _, row := range r.Breakdown {
		if row.Category == c {
			return row, true
		}
	}
	return BreakdownRow{}, false
}

func clampAmount(v int64) int64 {
	if v < 0 || v > MaxAmount {
		return 0
	}
	return v
}
