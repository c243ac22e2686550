package asset

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

func token(symbol, name, address string, decimals uint8, threshold int64, priority string, category Category) Descriptor {
	return Descriptor{
		Symbol:         symbol,
		Name:           name,
		Address:        common.HexToAddress(address),
		Decimals:       decimals,
		Category:       category,
		Priority:       priority,
		WhaleThreshold: decimal.NewFromInt(threshold),
	}
}

// DefaultTokens is the built-in list of watched Ethereum mainnet tokens.
var DefaultTokens = []Descriptor{
	// Stablecoins
	token("USDT", "Tether USD", "0xdAC17F958D2ee523a2206206994597C13D831ec7", 6, 1_000_000, "high", Stablecoin),
	token("USDC", "USD Coin", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", 6, 1_000_000, "high", Stablecoin),
	token("DAI", "Dai Stablecoin", "0x6B175474E89094C44Da98b954EedeAC495271d0F", 18, 1_000_000, "high", Stablecoin),
	token("BUSD", "Binance USD", "0x4Fabb145d64652a948d72533023f6E7A623C7C53", 18, 1_000_000, "high", Stablecoin),

	// DeFi
	token("UNI", "Uniswap", "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", 18, 100_000, "high", DeFi),
	token("AAVE", "Aave Token", "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", 18, 5_000, "high", DeFi),
	token("LINK", "ChainLink Token", "0x514910771AF9Ca656af840dff83E8264EcF986CA", 18, 50_000, "high", Oracle),
	token("CRV", "Curve DAO Token", "0xD533a949740bb3306d119CC777fa900bA034cd52", 18, 1_000_000, "medium", DeFi),
	token("COMP", "Compound", "0xc00e94Cb662C3520282E6f5717214004A7f26888", 18, 10_000, "medium", DeFi),

	token("SHIB", "SHIBA INU", "0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE", 18, 50_000_000_000_000, "medium", Meme),
	token("PEPE", "Pepe", "0x6982508145454Ce325dDbE47a25d4ec3d2311933", 18, 50_000_000_000_000, "medium", Meme),
	token("MATIC", "Matic Token", "0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0", 18, 1_000_000, "medium", Layer2),
	token("LDO", "Lido DAO Token", "0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32", 18, 500_000, "medium", Staking),

	// Wrapped and staked
	token("WBTC", "Wrapped BTC", "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", 8, 10, "high", Wrapped),
	token("stETH", "Lido Staked Ether", "0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84", 18, 200, "high", Staking),
}

// DefaultRegistry returns a registry of DefaultTokens.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultTokens...)
	if err != nil {
		panic(err)
	}
	return r
}
