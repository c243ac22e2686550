package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/whale"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type State int32

const (
	Disconnected State = iota
	Connecting
	Subscribed
	ProcessingBlock
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Subscribed:
		return "subscribed"
	case ProcessingBlock:
		return "processing_block"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Publisher receives every emitted whale event, in emission order.
type Publisher interface {
	Publish(ev *whale.WhaleEvent)
}

const (
	DefaultReconnectBackoff   = 10 * time.Second
	DefaultCallTimeout        = 15 * time.Second
	DefaultReceiptConcurrency = 16
	DefaultDedupSize          = 4096

	headBuffer = 16
)

// DefaultNativeThreshold is 100 whole units of the native asset.
var DefaultNativeThreshold = whale.NativeUnits(decimal.NewFromInt(100))

// BlockMonitor subscribes to new heads and emits native and token whale
// transfers of every block. Blocks are processed one at a time.
type BlockMonitor struct {
	rpcURL        string
	rpcClientOpts []rpc.ClientOption
	dial          Dialer

	registry  *asset.Registry
	watched   map[common.Address]struct{}
	formatter *whale.Formatter
	publisher Publisher
	metrics   *metrics.Metrics

	nativeThreshold    *big.Int
	backoff            time.Duration
	maxAttempts        int
	callTimeout        time.Duration
	receiptConcurrency int
	dedupSize          int

	// only touched by the Run goroutine
	seen   *simplelru.LRU[string, struct{}]
	signer types.Signer

	state   atomic.Int32
	retries atomic.Int64

	// current upstream, guarded by mu
	mu       sync.RWMutex
	provider Provider
	network  Network
}

func NewBlockMonitor(
	rpcURL string,
	registry *asset.Registry,
	formatter *whale.Formatter,
	publisher Publisher,
	opts ...BlockMonitorOption,
) (*BlockMonitor, error) {
	m := &BlockMonitor{
		rpcURL:             rpcURL,
		registry:           registry,
		watched:            registry.AllAddresses(),
		formatter:          formatter,
		publisher:          publisher,
		nativeThreshold:    DefaultNativeThreshold,
		backoff:            DefaultReconnectBackoff,
		callTimeout:        DefaultCallTimeout,
		receiptConcurrency: DefaultReceiptConcurrency,
		dedupSize:          DefaultDedupSize,
	}

	for _, opt := range opts {
		opt.Apply(m)
	}

	if m.dial == nil {
		m.dial = EthclientDialer(m.rpcClientOpts...)
	}
	if m.metrics == nil {
		m.metrics = metrics.New(nil)
	}

	seen, err := simplelru.NewLRU[string, struct{}](m.dedupSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedup cache: %w", err)
	}
	m.seen = seen

	return m, nil
}

// Run connects to the upstream and processes new blocks until ctx is
// cancelled. Failed connection attempts are retried after a fixed backoff.
// Run returns nil on cancellation and an error only when the configured
// maximum of consecutive failed attempts is reached.
func (m *BlockMonitor) Run(ctx context.Context) error {
	defer m.setState(Disconnected)

	failures := 0
	for {
		m.setState(Connecting)
		sub, heads, err := m.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			m.setState(Disconnected)
			failures++
			m.retries.Add(1)
			m.metrics.ConnectFailures.Inc()

			slog.Error("failed to connect to upstream",
				slog.Any("error", err),
				slog.Int("attempt", failures),
				slog.Duration("retry_in", m.backoff),
			)

			if m.maxAttempts > 0 && failures >= m.maxAttempts {
				return fmt.Errorf("giving up after %d connection attempts: %w", failures, err)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(m.backoff):
			}
			continue
		}
		failures = 0

		err = m.consume(ctx, sub, heads)
		m.disconnect(sub)
		if ctx.Err() != nil {
			slog.Info("block monitor stopped")
			return nil
		}

		slog.Error("upstream subscription failed, reconnecting", slog.Any("error", err))
	}
}

// State returns the current state of the monitor.
func (m *BlockMonitor) State() State {
	return State(m.state.Load())
}

// RetryCount returns the number of failed connection attempts since the
// monitor started.
func (m *BlockMonitor) RetryCount() int64 {
	return m.retries.Load()
}

// Network returns the chain of the current upstream connection.
func (m *BlockMonitor) Network() (Network, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.network, m.provider != nil
}

// Upstream returns the connected provider, or ErrDisconnected.
func (m *BlockMonitor) Upstream() (Provider, Network, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.provider == nil {
		return nil, m.network, ErrDisconnected
	}
	return m.provider, m.network, nil
}

func (m *BlockMonitor) setState(s State) {
	m.state.Store(int32(s))
}

func (m *BlockMonitor) connect(ctx context.Context) (ethereum.Subscription, <-chan *types.Header, error) {
	dctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	p, err := m.dial(dctx, m.rpcURL)
	if err != nil {
		return nil, nil, err
	}

	chainID, err := timed(ctx, m, "eth_chainId", p.ChainID)
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	heads := make(chan *types.Header, headBuffer)
	sub, err := timed(ctx, m, "eth_subscribe", func(ctx context.Context) (ethereum.Subscription, error) {
		return p.SubscribeNewHead(ctx, heads)
	})
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to new head: %w", err)
	}

	network := NetworkFor(chainID)
	m.signer = types.LatestSignerForChainID(chainID)

	m.mu.Lock()
	m.provider = p
	m.network = network
	m.mu.Unlock()

	m.metrics.UpstreamConnected.Set(1)
	slog.Info("connected to upstream",
		slog.String("network", network.Name),
		slog.Uint64("chain_id", network.ChainID),
	)

	return sub, heads, nil
}

func (m *BlockMonitor) disconnect(sub ethereum.Subscription) {
	sub.Unsubscribe()

	m.mu.Lock()
	p := m.provider
	m.provider = nil
	m.mu.Unlock()

	if p != nil {
		p.Close()
	}
	m.metrics.UpstreamConnected.Set(0)
	m.setState(Disconnected)
}

// consume processes heads until the subscription fails or ctx is done.
func (m *BlockMonitor) consume(ctx context.Context, sub ethereum.Subscription, heads <-chan *types.Header) error {
	errs := sub.Err()
	m.setState(Subscribed)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			if err == nil {
				return ErrDisconnected
			}
			return fmt.Errorf("%w: %w", ErrDisconnected, err)
		case head := <-heads:
			if head == nil || head.Number == nil {
				continue
			}
			m.setState(ProcessingBlock)
			m.processBlock(ctx, head.Number)
			m.setState(Subscribed)
		}
	}
}

func (m *BlockMonitor) processBlock(ctx context.Context, number *big.Int) {
	p, _, err := m.Upstream()
	if err != nil {
		return
	}

	block, err := timed(ctx, m, "eth_getBlockByNumber", func(ctx context.Context) (*types.Block, error) {
		return p.BlockByNumber(ctx, number)
	})
	if err != nil {
		m.metrics.BlockFailures.Inc()
		slog.Error("failed to get block by number",
			slog.Any("error", err),
			slog.String("block_number", number.String()),
		)
		return
	}
	if block == nil || len(block.Transactions()) == 0 {
		m.metrics.BlocksProcessed.Inc()
		return
	}

	blockNumber := block.NumberU64()
	txs := block.Transactions()
	emitted := 0

	for _, tx := range txs {
		if m.handleNative(tx, blockNumber) {
			emitted++
		}
	}

	for _, receipt := range m.fetchReceipts(ctx, p, txs) {
		if receipt == nil {
			continue
		}
		for _, l := range receipt.Logs {
			if m.handleLog(l, blockNumber) {
				emitted++
			}
		}
	}

	m.metrics.BlocksProcessed.Inc()
	slog.Info("processed a block",
		slog.Uint64("block_number", blockNumber),
		slog.Int("transactions", len(txs)),
		slog.Int("whale_events", emitted),
	)
}

func (m *BlockMonitor) handleNative(tx *types.Transaction, blockNumber uint64) bool {
	if !whale.IsNativeWhale(tx.Value(), m.nativeThreshold) {
		return false
	}

	from, err := types.Sender(m.signer, tx)
	if err != nil {
		slog.Error("failed to recover sender",
			slog.Any("error", err),
			slog.String("tx_hash", tx.Hash().Hex()),
		)
		return false
	}

	return m.emit(m.formatter.FormatNative(&whale.NativeTransfer{
		From:     from,
		To:       tx.To(),
		Amount:   tx.Value(),
		GasPrice: tx.GasPrice(),
		TxHash:   tx.Hash(),
	}, blockNumber))
}

// fetchReceipts returns receipts in transaction order. Failed fetches leave
// a nil entry.
func (m *BlockMonitor) fetchReceipts(ctx context.Context, p Provider, txs types.Transactions) []*types.Receipt {
	receipts := make([]*types.Receipt, len(txs))

	var g errgroup.Group
	g.SetLimit(m.receiptConcurrency)
	for i, tx := range txs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := timed(ctx, m, "eth_getTransactionReceipt", func(ctx context.Context) (*types.Receipt, error) {
				return p.TransactionReceipt(ctx, tx.Hash())
			})
			if err != nil {
				m.metrics.ReceiptFailures.Inc()
				slog.Warn("failed to get transaction receipt",
					slog.Any("error", err),
					slog.String("tx_hash", tx.Hash().Hex()),
				)
				return nil
			}
			receipts[i] = r
			return nil
		})
	}
	g.Wait()

	return receipts
}

func (m *BlockMonitor) handleLog(l *types.Log, blockNumber uint64) bool {
	if l == nil || l.Removed {
		return false
	}
	if _, ok := m.watched[l.Address]; !ok {
		return false
	}
	d := m.registry.Lookup(l.Address)

	t, err := whale.DecodeTransferLog(l)
	if errors.Is(err, whale.ErrNotTransfer) {
		return false
	}
	if err != nil {
		m.metrics.DecodeFailures.Inc()
		slog.Warn("failed to decode transfer log",
			slog.Any("error", err),
			slog.String("token", d.Symbol),
			slog.String("tx_hash", l.TxHash.Hex()),
			slog.Uint64("log_index", uint64(l.Index)),
		)
		return false
	}

	if !whale.IsTokenWhale(t.Amount, d) {
		return false
	}
	return m.emit(m.formatter.FormatToken(t, d, blockNumber))
}

// emit publishes ev unless an event with the same id was emitted recently,
// which happens when a head is delivered again after a reconnect.
func (m *BlockMonitor) emit(ev *whale.WhaleEvent) bool {
	if m.seen.Contains(ev.ID) {
		m.metrics.DuplicateEvents.Inc()
		return false
	}
	m.seen.Add(ev.ID, struct{}{})

	m.publisher.Publish(ev)
	m.metrics.WhaleEvents.WithLabelValues(ev.Symbol).Inc()

	slog.Info("whale transaction",
		slog.String("id", ev.ID),
		slog.String("symbol", ev.Symbol),
		slog.String("value", ev.Value.String()),
		slog.String("value_usd", ev.ValueUSD.String()),
		slog.String("from", ev.FromLabel),
		slog.String("to", ev.ToLabel),
	)
	return true
}

// timed runs an upstream call with the per call timeout and records its
// latency.
func timed[T any](ctx context.Context, m *BlockMonitor, method string, call func(context.Context) (T, error)) (T, error) {
	return timedCall(ctx, m.callTimeout, m.metrics, method, call)
}

func timedCall[T any](
	ctx context.Context,
	timeout time.Duration,
	mt *metrics.Metrics,
	method string,
	call func(context.Context) (T, error),
) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	v, err := call(cctx)
	mt.RPCLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	return v, err
}

type BlockMonitorOption interface {
	Apply(*BlockMonitor)
}

type WithRpcClientOptions struct {
	Opts []rpc.ClientOption
}

func (w WithRpcClientOptions) Apply(m *BlockMonitor) {
	m.rpcClientOpts = w.Opts
}

// WithDialer replaces the ethclient dialer.
type WithDialer struct {
	Dial Dialer
}

func (w WithDialer) Apply(m *BlockMonitor) {
	m.dial = w.Dial
}

type WithMetrics struct {
	Metrics *metrics.Metrics
}

func (w WithMetrics) Apply(m *BlockMonitor) {
	m.metrics = w.Metrics
}

// WithNativeThreshold sets the native whale threshold in base units.
type WithNativeThreshold struct {
	Amount *big.Int
}

func (w WithNativeThreshold) Apply(m *BlockMonitor) {
	if w.Amount != nil {
		m.nativeThreshold = w.Amount
	}
}

// WithReconnect sets the fixed delay between connection attempts and the
// number of consecutive failures after which Run gives up. Zero MaxAttempts
// retries forever.
type WithReconnect struct {
	Backoff     time.Duration
	MaxAttempts int
}

func (w WithReconnect) Apply(m *BlockMonitor) {
	if w.Backoff > 0 {
		m.backoff = w.Backoff
	}
	if w.MaxAttempts > 0 {
		m.maxAttempts = w.MaxAttempts
	}
}

type WithCallTimeout struct {
	Timeout time.Duration
}

func (w WithCallTimeout) Apply(m *BlockMonitor) {
	if w.Timeout > 0 {
		m.callTimeout = w.Timeout
	}
}

type WithReceiptConcurrency struct {
	Limit int
}

func (w WithReceiptConcurrency) Apply(m *BlockMonitor) {
	if w.Limit > 0 {
		m.receiptConcurrency = w.Limit
	}
}

type WithDedupSize struct {
	Size int
}

func (w WithDedupSize) Apply(m *BlockMonitor) {
	if w.Size > 0 {
		m.dedupSize = w.Size
	}
}
