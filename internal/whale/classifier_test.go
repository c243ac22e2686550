package whale

import (
	"math/big"
	"testing"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func eth(units string) *big.Int {
	return NativeUnits(decimal.RequireFromString(units))
}

func TestIsNativeWhale(t *testing.T) {
	threshold := eth("100")

	tests := []struct {
		name   string
		amount *big.Int
		want   bool
	}{
		{name: "exactly the threshold", amount: eth("100"), want: true},
		{name: "above the threshold", amount: eth("1500.5"), want: true},
		{name: "one wei below", amount: new(big.Int).Sub(threshold, big.NewInt(1)), want: false},
		{name: "99.999999 units", amount: eth("99.999999"), want: false},
		{name: "zero", amount: big.NewInt(0), want: false},
		{name: "nil amount", amount: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNativeWhale(tt.amount, threshold))
		})
	}
}

func TestIsTokenWhale(t *testing.T) {
	usdt := &asset.Descriptor{
		Symbol:         "USDT",
		Decimals:       6,
		Category:       asset.Stablecoin,
		WhaleThreshold: decimal.NewFromInt(1_000_000),
	}

	tests := []struct {
		name string
		raw  *big.Int
		d    *asset.Descriptor
		want bool
	}{
		{name: "1,000,001 units", raw: big.NewInt(1_000_001_000000), d: usdt, want: true},
		{name: "exactly 1,000,000 units", raw: big.NewInt(1_000_000_000000), d: usdt, want: true},
		{name: "one raw unit below", raw: big.NewInt(999_999_999999), d: usdt, want: false},
		{name: "999,999 units", raw: big.NewInt(999_999_000000), d: usdt, want: false},
		{name: "unregistered asset", raw: big.NewInt(1_000_001_000000), d: nil, want: false},
		{name: "nil amount", raw: nil, d: usdt, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTokenWhale(tt.raw, tt.d))
		})
	}
}

// Scaling must agree with comparing raw amounts against threshold *
// 10^decimals in integer arithmetic, in particular where float64 rounding
// would flip the outcome.
func TestIsTokenWhaleMatchesIntegerComparison(t *testing.T) {
	thresholds := []string{"1", "10", "200", "5000", "1000000", "50000000000000", "0.5"}
	decimalsList := []uint8{0, 6, 8, 18, 24}

	for _, th := range thresholds {
		for _, dec := range decimalsList {
			d := &asset.Descriptor{Decimals: dec, WhaleThreshold: decimal.RequireFromString(th)}
			rawThreshold := d.WhaleThreshold.Shift(int32(dec))
			if !rawThreshold.IsInteger() {
				continue
			}
			intThreshold := rawThreshold.BigInt()

			for _, delta := range []int64{-2, -1, 0, 1, 2} {
				raw := new(big.Int).Add(intThreshold, big.NewInt(delta))
				if raw.Sign() < 0 {
					continue
				}
				want := raw.Cmp(intThreshold) >= 0
				assert.Equal(t, want, IsTokenWhale(raw, d), "threshold=%s decimals=%d delta=%d", th, dec, delta)
			}

			// Exact multiples of 10^decimals round trip through scaling.
			for _, k := range []int64{0, 1, 199, 200, 201, 999_999, 1_000_000} {
				raw := new(big.Int).Mul(big.NewInt(k), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dec)), nil))
				scaled := ScaleAmount(raw, dec)
				assert.True(t, scaled.Equal(decimal.NewFromInt(k)))
				assert.Equal(t, raw.Cmp(intThreshold) >= 0, IsTokenWhale(raw, d), "threshold=%s decimals=%d k=%d", th, dec, k)
			}
		}
	}
}

func TestScaleAmount(t *testing.T) {
	assert.Equal(t, "1000001", ScaleAmount(big.NewInt(1_000_001_000000), 6).String())
	assert.Equal(t, "0.019222", ScaleAmount(big.NewInt(19222000000000000), 18).String())
	assert.Equal(t, "0", ScaleAmount(nil, 18).String())
}

func TestNativeUnits(t *testing.T) {
	assert.Equal(t, "100000000000000000000", NativeUnits(decimal.NewFromInt(100)).String())
	assert.Equal(t, "1", NativeUnits(decimal.RequireFromString("0.000000000000000001")).String())
	// Sub-wei digits are dropped.
	assert.Equal(t, "0", NativeUnits(decimal.RequireFromString("0.0000000000000000001")).String())
}
