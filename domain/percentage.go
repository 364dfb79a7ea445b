package domain

import (
	"math"
	"math/bits"
)

// Percentage is a fixed point percentage with 1e8 representing 100%.
// It is shared by the listing and auction payout flows.
type Percentage uint64

const (
	// PercentageMax is 100%
	PercentageMax Percentage = 100_000_000

	microPerPercent = 1_000_000
)

func FromPercent(percent uint64) Percentage {
	return Percentage(percent * microPerPercent)
}

func FromMicroPercent(microPercent uint64) Percentage {
	return Percentage(microPercent)
}

func (p Percentage) Add(rhs Percentage) Percentage {
	return p + rhs
}

// Mul computes p percent of amount, truncating. The intermediate product is
// kept in 128 bits so large amounts do not overflow.
func (p Percentage) Mul(amount Amount) Amount {
	hi, lo := bits.Mul64(uint64(amount), uint64(p))
	q, _ := bits.Div64(hi, lo, uint64(PercentageMax))
	return Amount(q)
}

// OfAmount returns the ratio amount:of as a Percentage, truncating. It
// saturates at the maximum representable value when `of` is zero or the
// ratio does not fit. Callers comparing the result against a threshold
// should be aware truncation may accept ratios marginally below it.
func OfAmount(amount, of Amount) Percentage {
	if of == 0 {
		return Percentage(math.MaxUint64)
	}
	hi, lo := bits.Mul64(uint64(amount), uint64(PercentageMax))
	if hi >= uint64(of) {
		return Percentage(math.MaxUint64)
	}
	q, _ := bits.Div64(hi, lo, uint64(of))
	return Percentage(q)
}
