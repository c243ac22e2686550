package asset

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

type fileToken struct {
	Symbol         string `koanf:"symbol"`
	Name           string `koanf:"name"`
	Address        string `koanf:"address"`
	Decimals       uint8  `koanf:"decimals"`
	Category       string `koanf:"category"`
	Priority       string `koanf:"priority"`
	WhaleThreshold string `koanf:"whale_threshold"`
}

// LoadFile reads a registry from a json file of the form
//
//	{"tokens": [{"symbol": "USDT", "address": "0x..", "decimals": 6,
//	  "category": "stablecoin", "whale_threshold": "1000000"}]}
func LoadFile(path string) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load token registry %s: %w", path, err)
	}

	var tokens []fileToken
	if err := k.Unmarshal("tokens", &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token registry %s: %w", path, err)
	}

	descriptors := make([]Descriptor, 0, len(tokens))
	for i, t := range tokens {
		if !common.IsHexAddress(t.Address) {
			return nil, fmt.Errorf("token #%d %q: %w", i, t.Symbol, ErrInvalidAddress)
		}
		threshold, err := decimal.NewFromString(strings.TrimSpace(t.WhaleThreshold))
		if err != nil {
			return nil, fmt.Errorf("token #%d %q: invalid whale threshold: %w", i, t.Symbol, err)
		}
		descriptors = append(descriptors, Descriptor{
			Symbol:         t.Symbol,
			Name:           t.Name,
			Address:        common.HexToAddress(t.Address),
			Decimals:       t.Decimals,
			Category:       Category(strings.ToLower(t.Category)),
			Priority:       t.Priority,
			WhaleThreshold: threshold,
		})
	}

	return NewRegistry(descriptors...)
}
