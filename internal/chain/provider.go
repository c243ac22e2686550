// Package chain follows new blocks of an EVM chain and turns them into whale
// events.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrDisconnected is returned while no upstream subscription is active.
var ErrDisconnected = errors.New("upstream disconnected")

// Provider is the subset of the node api the monitor consumes. It is
// satisfied by *ethclient.Client.
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BlockByNumber(ctx context.Context, number *big.Int) (*types.Block, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	Close()
}

var _ Provider = (*ethclient.Client)(nil)

// Dialer opens a Provider for the given rpc url.
type Dialer func(ctx context.Context, rpcURL string) (Provider, error)

// EthclientDialer dials rpcURL with the given rpc client options. New head
// subscriptions need a websocket or ipc url.
func EthclientDialer(opts ...rpc.ClientOption) Dialer {
	return func(ctx context.Context, rpcURL string) (Provider, error) {
		c, err := rpc.DialOptions(ctx, rpcURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to dial rpc: %w", err)
		}
		return ethclient.NewClient(c), nil
	}
}

// Network identifies the chain the upstream serves.
type Network struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chainId"`
}

var networkNames = map[uint64]string{
	1:        "mainnet",
	17000:    "holesky",
	11155111: "sepolia",
}

// NetworkFor names a chain id. Chains outside the built-in list are "unknown".
func NetworkFor(chainID *big.Int) Network {
	id := chainID.Uint64()
	name, ok := networkNames[id]
	if !ok {
		name = "unknown"
	}
	return Network{Name: name, ChainID: id}
}
