package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/shopspring/decimal"
)

// NetworkStatus describes the upstream chain. Stale is set when the values
// are the last known ones rather than freshly fetched.
type NetworkStatus struct {
	Network     string `json:"network"`
	ChainID     uint64 `json:"chainId"`
	BlockNumber uint64 `json:"blockNumber"`
	// gwei
	GasPrice  string `json:"gasPrice"`
	Connected bool   `json:"connected"`
	Stale     bool   `json:"stale"`
}

// Upstream hands out the currently connected provider.
type Upstream interface {
	Upstream() (Provider, Network, error)
}

// NetworkStatusReader fetches the network status on demand and falls back to
// the last successful result while the upstream is unavailable.
type NetworkStatusReader struct {
	upstream Upstream
	timeout  time.Duration
	metrics  *metrics.Metrics

	mu      sync.Mutex
	last    NetworkStatus
	fetched bool
}

func NewNetworkStatusReader(upstream Upstream, timeout time.Duration, m *metrics.Metrics) *NetworkStatusReader {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &NetworkStatusReader{
		upstream: upstream,
		timeout:  timeout,
		metrics:  m,
	}
}

// Status returns the fresh network status. When the upstream can not be
// reached it returns the last known status marked stale, or an error if no
// status was ever fetched.
func (r *NetworkStatusReader) Status(ctx context.Context) (NetworkStatus, error) {
	p, network, err := r.upstream.Upstream()
	if err != nil {
		return r.fallback(network, err)
	}

	blockNumber, err := timedCall(ctx, r.timeout, r.metrics, "eth_blockNumber", p.BlockNumber)
	if err != nil {
		slog.Warn("failed to get block number", slog.Any("error", err))
		return r.fallback(network, fmt.Errorf("%w: %w", ErrDisconnected, err))
	}
	gasPrice, err := timedCall(ctx, r.timeout, r.metrics, "eth_gasPrice", p.SuggestGasPrice)
	if err != nil {
		slog.Warn("failed to get gas price", slog.Any("error", err))
		return r.fallback(network, fmt.Errorf("%w: %w", ErrDisconnected, err))
	}

	status := NetworkStatus{
		Network:     network.Name,
		ChainID:     network.ChainID,
		BlockNumber: blockNumber,
		GasPrice:    gwei(gasPrice),
		Connected:   true,
	}

	r.mu.Lock()
	r.last = status
	r.fetched = true
	r.mu.Unlock()

	return status, nil
}

func (r *NetworkStatusReader) fallback(network Network, cause error) (NetworkStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.fetched {
		return NetworkStatus{
			Network: network.Name,
			ChainID: network.ChainID,
			Stale:   true,
		}, cause
	}

	status := r.last
	status.Connected = false
	status.Stale = true
	return status, nil
}

func gwei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -9).String()
}
