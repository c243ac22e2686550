package chain

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/Mantelijo/whale-alert/internal/asset"
	"github.com/Mantelijo/whale-alert/internal/hub"
	"github.com/Mantelijo/whale-alert/internal/metrics"
	"github.com/Mantelijo/whale-alert/internal/store"
	"github.com/Mantelijo/whale-alert/internal/whale"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockMonitorIntoHubKeepsNewestHistory(t *testing.T) {
	const (
		capacity = 5
		blocks   = 12
		first    = 1000
	)

	// one USDT whale transfer per block
	txs := make(map[int64]*types.Transaction, blocks)
	receipts := make(map[common.Hash]*types.Receipt, blocks)
	numbers := make([]int64, 0, blocks)
	for n := int64(first); n < first+blocks; n++ {
		tx := plainTx(uint64(n))
		txs[n] = tx
		receipts[tx.Hash()] = &types.Receipt{Logs: []*types.Log{
			usdtLog(tx.Hash(), 0, whale.TransferEventSignature, usdtAmount(2_000_000)),
		}}
		numbers = append(numbers, n)
	}

	p := headsProvider(t, func(ctx context.Context, number *big.Int) (*types.Block, error) {
		return blockWith(number.Int64(), txs[number.Int64()]), nil
	}, numbers...)
	p.transactionReceipt = func(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
		return receipts[txHash], nil
	}

	m := metrics.New(nil)
	recent := store.NewRecentEvents(capacity)
	h := hub.New(recent, hub.WithMetrics(m))
	sub := h.Subscribe()

	formatter := whale.NewFormatter(
		whale.NewStaticLabeler(whale.KnownAddresses),
		whale.StaticPrice(decimal.NewFromInt(2500)),
	)
	monitor, err := NewBlockMonitor("ws://dummy.net", asset.DefaultRegistry(), formatter, h,
		WithDialer{Dial: dialTo(p)},
		WithMetrics{Metrics: m},
		WithReconnect{Backoff: time.Millisecond},
		WithCallTimeout{Timeout: time.Second},
	)
	require.NoError(t, err)

	cancel, done := start(monitor)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.BlocksProcessed) == blocks
	}, 5*time.Second, 5*time.Millisecond)
	stop(t, cancel, done)

	wantID := func(n int64) string {
		return txs[n].Hash().Hex() + ":0"
	}

	// the live subscriber saw every event in emission order
	msg := <-sub.Messages()
	require.Equal(t, hub.InitialData, msg.Type)
	assert.Empty(t, msg.Data)
	for n := int64(first); n < first+blocks; n++ {
		msg := <-sub.Messages()
		require.Equal(t, hub.WhaleTransaction, msg.Type)
		ev, ok := msg.Data.(*whale.WhaleEvent)
		require.True(t, ok)
		assert.Equal(t, wantID(n), ev.ID)
		assert.Equal(t, uint64(n), ev.BlockNumber)
	}

	// history holds exactly the newest events, newest first
	snapshot := recent.Snapshot()
	require.Len(t, snapshot, capacity)
	for i, ev := range snapshot {
		n := int64(first + blocks - 1 - i)
		assert.Equal(t, wantID(n), ev.ID)
	}

	// a late subscriber starts from the same history
	late := h.Subscribe()
	msg = <-late.Messages()
	require.Equal(t, hub.InitialData, msg.Type)
	assert.Equal(t, snapshot, msg.Data)

	assert.Equal(t, float64(blocks), testutil.ToFloat64(m.WhaleEvents.WithLabelValues("USDT")))
	h.Close()
}
