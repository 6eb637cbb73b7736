package deduction

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"cardcredit/internal/platform/money"
)

// ParseAmount strips every non-digit from raw and parses the rest.
// Empty, all non-digit and out of range input is 0.
func ParseAmount(raw string) int64 {
	return clampAmount(money.ParseDigits(raw))
}

// Amount decodes a JSON number or a grouped numeral string ("1,200,000").
// Decoding never fails: anything unusable becomes 0.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = 0
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = Amount(ParseAmount(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		d, err := decimal.NewFromString(string(data))
		if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(MaxAmount)) {
			return nil
		}
		*a = Amount(d.IntPart())
	}
	return nil
}

func (a Amount) Int64() int64 {
	return int64(a)
}
