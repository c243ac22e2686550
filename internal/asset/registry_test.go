package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name       string
		address    string
		wantSymbol string
	}{
		{name: "checksummed", address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", wantSymbol: "USDT"},
		{name: "lower case", address: "0xdac17f958d2ee523a2206206994597c13d831ec7", wantSymbol: "USDT"},
		{name: "upper case", address: "0x2260FAC5E5542A773AA44FBCFEDF7C193BC2C599", wantSymbol: "WBTC"},
		{name: "unknown contract", address: "0x0000000000000000000000000000000000000001"},
		{name: "malformed", address: "0x1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.LookupHex(tt.address)
			if tt.wantSymbol == "" {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.Equal(t, tt.wantSymbol, d.Symbol)
		})
	}
}

func TestRegistryAllAddresses(t *testing.T) {
	r := DefaultRegistry()

	all := r.AllAddresses()
	assert.Len(t, all, len(DefaultTokens))
	assert.Equal(t, len(DefaultTokens), r.Len())

	for _, d := range r.All() {
		_, ok := all[d.Address]
		assert.True(t, ok, d.Symbol)
	}

	// Mutating the returned set does not affect the registry.
	delete(all, common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"))
	assert.NotNil(t, r.LookupHex("0xdAC17F958D2ee523a2206206994597C13D831ec7"))
}

func TestNewRegistryRejectsInvalid(t *testing.T) {
	usdt := DefaultTokens[0]

	tests := []struct {
		name        string
		descriptors []Descriptor
		wantErr     string
	}{
		{
			name:        "duplicate address",
			descriptors: []Descriptor{usdt, usdt},
			wantErr:     "registered twice",
		},
		{
			name: "zero address",
			descriptors: []Descriptor{
				{Symbol: "X", WhaleThreshold: decimal.NewFromInt(1)},
			},
			wantErr: ErrInvalidAddress.Error(),
		},
		{
			name: "negative threshold",
			descriptors: []Descriptor{
				{Symbol: "X", Address: common.HexToAddress("0x01"), WhaleThreshold: decimal.NewFromInt(-1)},
			},
			wantErr: "negative whale threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.descriptors...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid registry", func(t *testing.T) {
		path := filepath.Join(dir, "tokens.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"tokens": [
				{
					"symbol": "USDT",
					"name": "Tether USD",
					"address": "0xdac17f958d2ee523a2206206994597c13d831ec7",
					"decimals": 6,
					"category": "Stablecoin",
					"priority": "high",
					"whale_threshold": "1000000"
				},
				{
					"symbol": "WBTC",
					"address": "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599",
					"decimals": 8,
					"category": "wrapped",
					"whale_threshold": "12.5"
				}
			]
		}`), 0o600))

		r, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Len())

		usdt := r.LookupHex("0xdAC17F958D2ee523a2206206994597C13D831ec7")
		require.NotNil(t, usdt)
		assert.Equal(t, uint8(6), usdt.Decimals)
		assert.True(t, usdt.IsStablecoin())
		assert.True(t, usdt.WhaleThreshold.Equal(decimal.NewFromInt(1_000_000)))

		wbtc := r.LookupHex("0x2260fac5e5542a773aa44fbcfedf7c193bc2c599")
		require.NotNil(t, wbtc)
		assert.Equal(t, "12.5", wbtc.WhaleThreshold.String())
	})

	t.Run("bad address", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"tokens":[{"symbol":"X","address":"nope","whale_threshold":"1"}]}`), 0o600))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}
