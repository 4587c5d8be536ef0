// Package assets converts integer amounts between fixed-point asset scales.
//
// The connector accounts in one scale (e.g. 9, nano-units) and PayPal in
// another (2, cents). All conversions are integer arithmetic: scaling up is
// exact, scaling down truncates toward zero. An engine must never invent
// fractional value by rounding up.
package assets

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Normalize converts amount from fromScale to toScale. The result is a new
// big.Int; amount is not modified. Scaling down drops the remainder.
func Normalize(amount *big.Int, fromScale, toScale uint) *big.Int {
	if toScale >= fromScale {
		factor := pow10(toScale - fromScale)
		return new(big.Int).Mul(amount, factor)
	}
	factor := pow10(fromScale - toScale)
	return new(big.Int).Quo(new(big.Int).Set(amount), factor)
}

// ToValueString renders integer minor units at the given scale as the decimal
// string the processor API expects, e.g. (1050, 2) -> "10.50".
func ToValueString(units *big.Int, scale uint) string {
	d := decimal.NewFromBigInt(units, -int32(scale))
	return d.StringFixed(int32(scale))
}

// ParseValueString parses a processor decimal string back into integer minor
// units at the given scale. A value with more fractional digits than the
// scale allows is rejected rather than silently truncated: the processor is
// the authority on its own scale, so extra precision means a mismatch.
func ParseValueString(value string, scale uint) (*big.Int, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal amount %q: %w", value, err)
	}
	units := d.Shift(int32(scale))
	if !units.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", value, scale)
	}
	return units.BigInt(), nil
}

func pow10(n uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
