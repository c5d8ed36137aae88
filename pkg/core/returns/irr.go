// Package returns assembles the equity cashflow stream and solves for the
// internal rate of return and equity multiple.
package returns

import "math"

const (
	irrInitialGuess  = 0.10
	irrTolerance     = 1e-6
	irrMaxIterations = 100
	irrRateFloor     = -0.99
)

// SolveIRR finds the rate at which the stream's net present value is zero
// using Newton-Raphson:
//
//	NPV(r)     = sum cf_i / (1+r)^i
//	dNPV/dr(r) = sum -i * cf_i / (1+r)^(i+1)
//
// The stream must contain at least one strictly negative and one strictly
// positive value; otherwise no meaningful rate exists and nil is returned.
// The rate is clamped at -0.99 each step to keep (1+r) positive, and the
// iteration bails out if the derivative collapses toward zero. A nil
// result means "undefined" and is a valid outcome, not an error.
func SolveIRR(cashflows []float64) *float64 {
	if len(cashflows) == 0 {
		return nil
	}

	hasNegative, hasPositive := false, false
	for _, cf := range cashflows {
		if cf < 0 {
			hasNegative = true
		}
		if cf > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return nil
	}

	rate := irrInitialGuess
	npv := math.Inf(1)

	for iter := 0; iter < irrMaxIterations; iter++ {
		npv = 0
		derivative := 0.0
		for i, cf := range cashflows {
			npv += cf / math.Pow(1+rate, float64(i))
			derivative += -float64(i) * cf / math.Pow(1+rate, float64(i+1))
		}

		if math.Abs(npv) < irrTolerance {
			return &rate
		}
		if math.Abs(derivative) < irrTolerance {
			break
		}

		rate -= npv / derivative
		if rate < irrRateFloor {
			rate = irrRateFloor
		}
	}

	if math.Abs(npv) < irrTolerance {
		return &rate
	}
	return nil
}

// NPV discounts the stream at the given rate (index 0 undiscounted).
func NPV(cashflows []float64, rate float64) float64 {
	var total float64
	for i, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(i))
	}
	return total
}
