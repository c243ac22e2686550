package whale

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestStaticLabeler(t *testing.T) {
	l := NewStaticLabeler(map[string]string{
		"0x28C6c06298d514Db089934071355E5743bf21d60": "Binance 14",
		"0xZZC6c06298d514Db089934071355E5743bf21d60": "ignored",
	})

	tests := []struct {
		name    string
		address common.Address
		want    string
	}{
		{
			name:    "known, lowercase input",
			address: common.HexToAddress("0x28c6c06298d514db089934071355e5743bf21d60"),
			want:    "Binance 14",
		},
		{
			name:    "unknown",
			address: fromAddress,
			want:    "Unknown (0x9642...5D4E)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Label(tt.address))
		})
	}
}

func TestKnownAddressesAreValid(t *testing.T) {
	l := NewStaticLabeler(KnownAddresses)
	for addr, label := range KnownAddresses {
		assert.True(t, common.IsHexAddress(addr), addr)
		assert.Equal(t, label, l.Label(common.HexToAddress(addr)))
	}
}
