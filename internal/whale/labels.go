package whale

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Labeler resolves a human readable name for an address. Implementations must
// always return a non-empty label.
type Labeler interface {
	Label(address common.Address) string
}

// KnownAddresses are well-known exchange and foundation wallets.
var KnownAddresses = map[string]string{
	"0xde0b295669a9fd93d5f28d9ec85e40f4cb697bae": "Ethereum Foundation",
	"0x3f5ce5fbfe3e9af3971dd833d26ba9b5c936f0be": "Binance",
	"0xd551234ae421e3bcba99a0da6d736074f22192ff": "Binance 2",
	"0x28c6c06298d514db089934071355e5743bf21d60": "Binance 14",
	"0x21a31ee1afc51d94c2efccaa2092ad1028285549": "Binance 15",
	"0xdfd5293d8e347dfe59e90efd55b2956a1343963d": "Binance 16",
	"0x56eddb7aa87536c09ccc2793473599fd21a8b17f": "Binance Hot Wallet",
	"0x9696f59e4d72e237be84ffd425dcad154bf96976": "Binance 7",
	"0x4e9ce36e442e55ecd9025b9a6e0d88485d628a67": "Binance 8",
	"0xbe0eb53f46cd790cd13851d5eff43d12404d33e8": "Binance 9",
	"0xf977814e90da44bfa03b6295a0616a897441acec": "Binance 10",
	"0x001d14804b399c6ef80e64576f657660804fec0b": "Bitfinex",
	"0x876eabf441b2ee5b5b0554fd502a8e0600950cfa": "Coinbase 1",
	"0xa9d1e08c7793af67e9d92fe308d5697fb81d3e43": "Coinbase 10",
	"0x77696bb39917c91a0c3908d577d5e322095425ca": "Coinbase 11",
}

// StaticLabeler looks addresses up in a fixed table and derives a short
// label for everything else.
type StaticLabeler struct {
	labels map[common.Address]string
}

func NewStaticLabeler(labels map[string]string) *StaticLabeler {
	l := &StaticLabeler{labels: make(map[common.Address]string, len(labels))}
	for addr, label := range labels {
		if common.IsHexAddress(addr) {
			l.labels[common.HexToAddress(addr)] = label
		}
	}
	return l
}

func (l *StaticLabeler) Label(address common.Address) string {
	if label, ok := l.labels[address]; ok {
		return label
	}
	return UnknownLabel(address)
}

// UnknownLabel is the label of an address nobody named, e.g.
// "Unknown (0x9642...5D4E)".
func UnknownLabel(address common.Address) string {
	h := address.Hex()
	return fmt.Sprintf("Unknown (%s...%s)", h[:6], h[len(h)-4:])
}
