package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// amounts are stored in micro units, one millionth of a currency unit
var microFactor = decimal.New(1, 6)

// ParseAmount parses a decimal string of whole currency units into micro
// units. Anything negative, fractional below a micro unit, or too large to
// hold is rejected.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrBadParamInput
	}
	m := d.Mul(microFactor)
	if m.IsNegative() || !m.IsInteger() {
		return 0, ErrBadParamInput
	}
	bi := m.BigInt()
	if !bi.IsUint64() {
		return 0, ErrBadParamInput
	}
	return Amount(bi.Uint64()), nil
}

// Display renders the amount in whole currency units.
func (a Amount) Display() string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -6).String()
}
