package domain

// Chain identifies a blockchain network.
type Chain string

const (
	ChainBTC Chain = "BTC"
	ChainETH Chain = "ETH"
	ChainTRX Chain = "TRX"
	ChainSOL Chain = "SOL"
	ChainBSC Chain = "BSC"
)

// Chains lists every supported chain in generator draw order.
var Chains = []Chain{ChainBTC, ChainETH, ChainTRX, ChainSOL, ChainBSC}

// ChainLabels maps a chain to its human-readable label.
var ChainLabels = map[Chain]string{
	ChainBTC: "Bitcoin (BTC)",
	ChainETH: "Ethereum (ETH)",
	ChainTRX: "TRON (TRX)",
	ChainBSC: "BNB Chain (BSC)",
	ChainSOL: "Solana (SOL)",
}

// Valid reports whether c is a known chain.
func (c Chain) Valid() bool {
	_, ok := ChainLabels[c]
	return ok
}

// NativeAsset returns the symbol used for balances on the chain.
func (c Chain) NativeAsset() string {
	switch c {
	case ChainBTC:
		return "BTC"
	case ChainSOL:
		return "SOL"
	default:
		return "ETH"
	}
}

// AddressFormat identifies the address template family used for a chain.
type AddressFormat string

const (
	AddressFormatEVM    AddressFormat = "evm"
	AddressFormatTron   AddressFormat = "tron"
	AddressFormatBech32 AddressFormat = "bech32"
	AddressFormatSolana AddressFormat = "solana"
)

// ChainAddressFormat maps each chain to the address format it actually uses.
var ChainAddressFormat = map[Chain]AddressFormat{
	ChainBTC: AddressFormatBech32,
	ChainETH: AddressFormatEVM,
	ChainBSC: AddressFormatEVM,
	ChainTRX: AddressFormatTron,
	ChainSOL: AddressFormatSolana,
}

// Asset is a transferred token symbol.
type Asset string

const (
	AssetBTC  Asset = "BTC"
	AssetETH  Asset = "ETH"
	AssetUSDT Asset = "USDT"
	AssetUSDC Asset = "USDC"
)

// Assets lists every generated asset in draw order.
var Assets = []Asset{AssetBTC, AssetETH, AssetUSDT, AssetUSDC}

// USDRate is the flat conversion rate the demo applies per asset.
func (a Asset) USDRate() int64 {
	switch a {
	case AssetBTC:
		return 40000
	case AssetETH:
		return 2200
	default:
		return 1
	}
}
