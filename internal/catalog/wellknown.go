package catalog

// Network ids
const (
	NetworkEthereum  = "ethereum"
	NetworkArbitrum  = "arbitrum"
	NetworkPolygon   = "polygon"
	NetworkOptimism  = "optimism"
	NetworkBSC       = "bsc"
	NetworkAvalanche = "avalanche"
	NetworkFantom    = "fantom"
	NetworkCronos    = "cronos"
	NetworkBase      = "base"
	NetworkSolana    = "solana"
)

// Exchange ids referenced by the fee model
const (
	DEXUniswap   = "uniswap"
	DEXSushiswap = "sushiswap"
)

// Wallet ids
const (
	WalletMetaMask      = "metamask"
	WalletWalletConnect = "walletconnect"
	WalletCoinbase      = "coinbase"
)

var networks = []Option{
	{NetworkEthereum, "Ethereum"},
	{NetworkArbitrum, "Arbitrum"},
	{NetworkPolygon, "Polygon"},
	{NetworkOptimism, "Optimism"},
	{NetworkBSC, "Binance Smart Chain"},
	{NetworkAvalanche, "Avalanche"},
	{NetworkFantom, "Fantom"},
	{NetworkCronos, "Cronos"},
	{NetworkBase, "Base"},
	{NetworkSolana, "Solana"},
}

var chainIDs = map[string]uint64{
	NetworkEthereum:  1,
	NetworkArbitrum:  42161,
	NetworkPolygon:   137,
	NetworkOptimism:  10,
	NetworkBSC:       56,
	NetworkAvalanche: 43114,
	NetworkFantom:    250,
	NetworkCronos:    25,
	NetworkBase:      8453,
}

var protocols = []Option{
	{"balancer-v2", "Balancer V2"},
	{"balancer-v3", "Balancer V3"},
	{"balancer", "Balancer (Generic)"},
	{"aave-ark", "Aave ARK"},
	{"aave-v2", "Aave V2"},
	{"aave-v3", "Aave V3"},
	{"uniswap-v1", "Uniswap V1 (Lending)"},
	{"uniswap-v2", "Uniswap V2 (Lending)"},
	{"uniswap-v3", "Uniswap V3 (Lending)"},
	{"uniswap-v4", "Uniswap V4 (Lending)"},
	{"compound", "Compound"},
	{"makerdao", "MakerDAO"},
	{"sparklend", "SparkLend"},
}

var dexFrom = []Option{
	{DEXUniswap, "Uniswap"},
	{DEXSushiswap, "Sushiswap"},
	{"kyberswap", "Kyberswap"},
	{"pancakeswap", "Pancakeswap"},
	{"curve", "Curve Finance"},
	{"balancer", "Balancer"},
}

var dexTo = []Option{
	{DEXSushiswap, "Sushiswap"},
	{"coreswap", "Coreswap"},
	{"linxswap", "Linxswap"},
	{"doxswap", "Doxswap"},
	{"optimumswap", "Optimumswap"},
	{DEXUniswap, "Uniswap"},
	{"pancakeswap", "Pancakeswap"},
}

var coins = []Option{
	{"USDT", "USDT"},
	{"USDC", "USDC"},
	{"ETH", "ETH"},
	{"WETH", "WETH"},
	{"WBTC", "WBTC"},
	{"BTC", "BTC"},
	{"DOX", "DOX"},
	{"LINX", "LINX"},
	{"MAGIC", "MAGIC"},
	{"DAI", "DAI"},
	{"LINK", "LINK"},
	{"MATIC", "MATIC"},
}

var wallets = []Wallet{
	{ID: WalletMetaMask, Name: "MetaMask", Injected: true},
	{ID: WalletWalletConnect, Name: "WalletConnect"},
	{ID: WalletCoinbase, Name: "Coinbase Wallet"},
}

// DefaultRegistry returns a registry pre-populated with the supported options.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(KindNetwork, networks...)
	r.Register(KindProtocol, protocols...)
	r.Register(KindDEXFrom, dexFrom...)
	r.Register(KindDEXTo, dexTo...)
	r.Register(KindCoin, coins...)

	for _, w := range wallets {
		r.RegisterWallet(w)
	}
	for network, id := range chainIDs {
		r.RegisterChainID(network, id)
	}

	return r
}
