// Package whale turns raw chain transfers into whale events: decoding token
// Transfer logs, classifying amounts against thresholds and formatting the
// outward event record.
package whale

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type AssetKind string

const (
	Native AssetKind = "ETH"
	Token  AssetKind = "ERC20"
)

// NativeTransfer is a plain value transfer taken from a transaction body. To is
// nil for contract creations.
type NativeTransfer struct {
	From     common.Address
	To       *common.Address
	Amount   *big.Int
	GasPrice *big.Int
	TxHash   common.Hash
}

// TokenTransfer is a decoded Transfer(address,address,uint256) log entry.
type TokenTransfer struct {
	Contract common.Address
	From     common.Address
	To       common.Address
	Amount   *big.Int
	TxHash   common.Hash
	LogIndex uint
}

type TokenInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Category string `json:"category"`
}

// WhaleEvent is the record stored in the recent history and pushed to
// subscribers. Events are never mutated after formatting.
type WhaleEvent struct {
	// hash for native events, hash:logIndex for token events
	ID          string          `json:"id"`
	Hash        string          `json:"hash"`
	From        string          `json:"from"`
	FromLabel   string          `json:"fromLabel"`
	To          string          `json:"to"`
	ToLabel     string          `json:"toLabel"`
	Symbol      string          `json:"symbol"`
	Value       decimal.Decimal `json:"value"`
	ValueUSD    USDValue        `json:"valueUSD"`
	GasPrice    string          `json:"gasPrice,omitempty"`
	BlockNumber uint64          `json:"blockNumber"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        AssetKind       `json:"type"`
	Token       *TokenInfo      `json:"token,omitempty"`
}

func NativeEventID(txHash common.Hash) string {
	return txHash.Hex()
}

func TokenEventID(txHash common.Hash, logIndex uint) string {
	return fmt.Sprintf("%s:%d", txHash.Hex(), logIndex)
}

const usdUnavailable = "N/A"

// USDValue is an estimated USD amount. Assets without a price source report
// it as unavailable instead of a guess.
type USDValue struct {
	Amount    decimal.Decimal
	Available bool
}

func USD(amount decimal.Decimal) USDValue {
	return USDValue{Amount: amount, Available: true}
}

func (v USDValue) String() string {
	if !v.Available {
		return usdUnavailable
	}
	return v.Amount.StringFixed(2)
}

func (v USDValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *USDValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == usdUnavailable {
		*v = USDValue{}
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid usd value %q: %w", s, err)
	}
	*v = USD(d)
	return nil
}
