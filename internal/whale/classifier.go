package whale

import (
	"math/big"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of decimals of the native asset (wei).
const NativeDecimals = 18

// IsNativeWhale compares amounts in the smallest native unit. The threshold
// is inclusive.
func IsNativeWhale(amount, threshold *big.Int) bool {
	if amount == nil || threshold == nil {
		return false
	}
	return amount.Cmp(threshold) >= 0
}

// IsTokenWhale scales the raw amount by the token decimals and compares it to
// the whole unit threshold. Tokens missing from the registry are never
// whales.
func IsTokenWhale(raw *big.Int, d *asset.Descriptor) bool {
	if raw == nil || d == nil {
		return false
	}
	return ScaleAmount(raw, d.Decimals).Cmp(d.WhaleThreshold) >= 0
}

// ScaleAmount returns raw / 10^decimals exactly.
func ScaleAmount(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// NativeUnits converts a whole unit amount to wei. Digits below one wei are
// truncated.
func NativeUnits(whole decimal.Decimal) *big.Int {
	return whole.Shift(NativeDecimals).BigInt()
}
