package deduction

import "errors"

var (
	ErrMissingSalary = errors.New("salary is required")
	ErrInvalidPolicy = errors.New("invalid deduction policy")
)
