package whale

import (
	"sync"
	"time"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/shopspring/decimal"
)

// ContractCreationLabel labels the missing receiver of a contract creation.
const ContractCreationLabel = "Contract Creation"

// PriceSource provides the reference USD price of the native asset. The value
// may be stale, it is never fetched by the formatter.
type PriceSource interface {
	NativeUSDPrice() decimal.Decimal
}

// StaticPrice is a fixed reference price.
type StaticPrice decimal.Decimal

func (p StaticPrice) NativeUSDPrice() decimal.Decimal {
	return decimal.Decimal(p)
}

// MonotonicClock never goes backwards, so detection timestamps follow the
// insertion order even if the wall clock is adjusted.
type MonotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewMonotonicClock(now func() time.Time) *MonotonicClock {
	if now == nil {
		now = time.Now
	}
	return &MonotonicClock{now: now}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC()
	if t.Before(c.last) {
		return c.last
	}
	c.last = t
	return t
}

// Formatter builds WhaleEvents from classified transfers.
type Formatter struct {
	labels       Labeler
	price        PriceSource
	nativeSymbol string
	clock        *MonotonicClock
}

type FormatterOption func(*Formatter)

func WithNativeSymbol(symbol string) FormatterOption {
	return func(f *Formatter) {
		f.nativeSymbol = symbol
	}
}

func WithClock(c *MonotonicClock) FormatterOption {
	return func(f *Formatter) {
		f.clock = c
	}
}

func NewFormatter(labels Labeler, price PriceSource, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		labels:       labels,
		price:        price,
		nativeSymbol: string(Native),
		clock:        NewMonotonicClock(nil),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) NativeSymbol() string {
	return f.nativeSymbol
}

// FormatNative formats a native whale transfer. USD is amount times the
// reference price.
func (f *Formatter) FormatNative(t *NativeTransfer, blockNumber uint64) *WhaleEvent {
	amount := ScaleAmount(t.Amount, NativeDecimals)

	ev := &WhaleEvent{
		ID:          NativeEventID(t.TxHash),
		Hash:        t.TxHash.Hex(),
		From:        t.From.Hex(),
		FromLabel:   f.labels.Label(t.From),
		ToLabel:     ContractCreationLabel,
		Symbol:      f.nativeSymbol,
		Value:       amount,
		ValueUSD:    USD(amount.Mul(f.price.NativeUSDPrice())),
		GasPrice:    "0",
		BlockNumber: blockNumber,
		Timestamp:   f.clock.Now(),
		Type:        Native,
	}
	if t.To != nil {
		ev.To = t.To.Hex()
		ev.ToLabel = f.labels.Label(*t.To)
	}
	if t.GasPrice != nil {
		// gwei
		ev.GasPrice = decimal.NewFromBigInt(t.GasPrice, -9).String()
	}
	return ev
}

// FormatToken formats a token whale transfer. Only stablecoins get a USD
// estimate, one whole unit per dollar.
func (f *Formatter) FormatToken(t *TokenTransfer, d *asset.Descriptor, blockNumber uint64) *WhaleEvent {
	amount := ScaleAmount(t.Amount, d.Decimals)

	var usd USDValue
	if d.IsStablecoin() {
		usd = USD(amount)
	}

	return &WhaleEvent{
		ID:          TokenEventID(t.TxHash, t.LogIndex),
		Hash:        t.TxHash.Hex(),
		From:        t.From.Hex(),
		FromLabel:   f.labels.Label(t.From),
		To:          t.To.Hex(),
		ToLabel:     f.labels.Label(t.To),
		Symbol:      d.Symbol,
		Value:       amount,
		ValueUSD:    usd,
		BlockNumber: blockNumber,
		Timestamp:   f.clock.Now(),
		Type:        Token,
		Token: &TokenInfo{
			Symbol:   d.Symbol,
			Name:     d.Name,
			Address:  d.Address.Hex(),
			Category: string(d.Category),
		},
	}
}
