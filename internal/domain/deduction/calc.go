package deduction

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Calculator computes deductions against a fixed Policy. It holds no mutable
// state and is safe for concurrent use.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

var defaultCalculator = NewCalculator(DefaultPolicy())

// Compute runs the default policy.
func Compute(in Input) (Result, error) {
	return defaultCalculator.Compute(in)
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// Compute normalizes in and returns the capped deductions together with an
// uncapped per-category breakdown. A zero salary yields ErrMissingSalary.
//
// Every row's credit is truncated to whole units before it is summed, and
// the threshold is truncated the same way.
func (c *Calculator) Compute(in Input) (Result, error) {
	in = in.Normalized()
	if in.Salary == 0 {
		return Result{}, ErrMissingSalary
	}

	p := c.policy
	threshold := floorMul(in.Salary, p.ThresholdRate)

	rows := make([]BreakdownRow, 0, len(basicOrder)+len(extraOrder))
	remaining := threshold
	for _, cat := range basicOrder {
		var eligible int64
		eligible, remaining = consume(in.Spend(cat), remaining)
		rows = append(rows, c.row(cat, in.Spend(cat), eligible))
	}
	for _, cat := range extraOrder {
		rows = append(rows, c.row(cat, in.Spend(cat), in.Spend(cat)))
	}

	basicRaw := sumCredit(rows, GroupBasic)
	extraRaw := sumCredit(rows, GroupExtra)
	bracket, limits := p.BracketFor(in.Salary)
	basic := min(basicRaw, limits.Basic)
	extra := min(extraRaw, limits.Extra)

	return Result{
		Salary:    in.Salary,
		Threshold: threshold,
		Bracket:   bracket,
		Limits:    limits,
		BasicRaw:  basicRaw,
		ExtraRaw:  extraRaw,
		Basic:     basic,
		Extra:     extra,
		Total:     basic + extra,
		Breakdown: rows,
	}, nil
}

func (c *Calculator) row(cat Category, spend, eligible int64) BreakdownRow {
	rate := c.policy.Rates.For(cat)
	return BreakdownRow{
		Category: cat,
		Label:    cat.Label(),
		Spend:    spend,
		Eligible: eligible,
		Rate:     rate,
		Credit:   floorMul(eligible, rate),
	}
}

// consume applies spend against the remaining threshold and returns the
// eligible part of spend together with what is left of the threshold.
func consume(spend, remaining int64) (eligible, left int64) {
	if remaining >= spend {
		return 0, remaining - spend
	}
	return spend - remaining, 0
}

func sumCredit(rows []BreakdownRow, group Group) int64 {
	return lo.SumBy(lo.Filter(rows, func(row BreakdownRow, _ int) bool {
		return row.Category.Group() == group
	}), func(row BreakdownRow) int64 {
		return row.Credit
	})
}

func floorMul(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}
