// Package asset holds the static registry of token contracts watched for
// whale transfers.
package asset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var ErrInvalidAddress = errors.New("invalid contract address")

type Category string

const (
	Stablecoin Category = "stablecoin"
	DeFi       Category = "defi"
	Oracle     Category = "oracle"
	Meme       Category = "meme"
	Layer2     Category = "layer2"
	Staking    Category = "staking"
	Wrapped    Category = "wrapped"
)

// Descriptor describes a registered token. WhaleThreshold is expressed in
// whole token units, i.e. before applying Decimals.
type Descriptor struct {
	Symbol         string
	Name           string
	Address        common.Address
	Decimals       uint8
	Category       Category
	Priority       string
	WhaleThreshold decimal.Decimal
}

// IsStablecoin reports whether one whole unit stands in for one USD.
func (d *Descriptor) IsStablecoin() bool {
	return d.Category == Stablecoin
}

// Registry is an immutable lookup of token descriptors by contract address.
type Registry struct {
	// ordered as registered
	descriptors []*Descriptor
	byAddress   map[common.Address]*Descriptor
}

// NewRegistry builds a registry. Duplicate addresses and symbols are
// rejected.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make([]*Descriptor, 0, len(descriptors)),
		byAddress:   make(map[common.Address]*Descriptor, len(descriptors)),
	}
	symbols := make(map[string]bool, len(descriptors))

	for i := range descriptors {
		d := descriptors[i]
		if d.Address == (common.Address{}) {
			return nil, fmt.Errorf("%s: %w", d.Symbol, ErrInvalidAddress)
		}
		if d.Symbol == "" {
			return nil, fmt.Errorf("token %s has no symbol", d.Address.Hex())
		}
		if d.WhaleThreshold.IsNegative() {
			return nil, fmt.Errorf("token %s has a negative whale threshold", d.Symbol)
		}
		if _, ok := r.byAddress[d.Address]; ok {
			return nil, fmt.Errorf("token address %s registered twice", d.Address.Hex())
		}
		if symbols[strings.ToLower(d.Symbol)] {
			return nil, fmt.Errorf("token symbol %s registered twice", d.Symbol)
		}
		symbols[strings.ToLower(d.Symbol)] = true

		r.descriptors = append(r.descriptors, &d)
		r.byAddress[d.Address] = &d
	}

	return r, nil
}

// Lookup returns the descriptor registered for the contract address, or nil.
func (r *Registry) Lookup(address common.Address) *Descriptor {
	return r.byAddress[address]
}

// LookupHex is Lookup for a hex encoded address. Comparison is case
// insensitive, a malformed address is never registered.
func (r *Registry) LookupHex(address string) *Descriptor {
	if !common.IsHexAddress(address) {
		return nil
	}
	return r.Lookup(common.HexToAddress(address))
}

// AllAddresses returns the set of registered contract addresses.
func (r *Registry) AllAddresses() map[common.Address]struct{} {
	out := make(map[common.Address]struct{}, len(r.byAddress))
	for a := range r.byAddress {
		out[a] = struct{}{}
	}
	return out
}

// All returns every descriptor in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = *d
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.descriptors)
}
