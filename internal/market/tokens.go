package market

// TokenRef locates a token on the DEX aggregator by contract address.
type TokenRef struct {
	Address string
	Chain   string
}

// memeTokens maps tracked symbols to the contract address DexScreener is
// queried by. DOGE is absent: it has no DEX coverage and resolves through the
// CoinPaprika ticker instead.
var memeTokens = map[string]TokenRef{
	// Ethereum
	"PEPE":   {Address: "0x6982508145454Ce325dDbE47a25d4ec3d2311933", Chain: "ethereum"},
	"SHIB":   {Address: "0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE", Chain: "ethereum"},
	"FLOKI":  {Address: "0xcf0C122c6b73ff809C693DB761e7BaeBe62b6a2E", Chain: "ethereum"},
	"MOG":    {Address: "0xaaeE1A9723aaDB7afA2810263653A34bA2C21C7a", Chain: "ethereum"},
	"NEIRO":  {Address: "0x812Ba41e071C7b7fA4EBcFB62dF5F45f6fA853Ee", Chain: "ethereum"},
	"MEME":   {Address: "0xb131f4A55907B10d1F0A50d8ab8FA09EC342cd74", Chain: "ethereum"},
	"TURBO":  {Address: "0xA35923162C49cF95e6BF26623385eb431ad920D3", Chain: "ethereum"},
	"LADYS":  {Address: "0x12970E6868f88f6557B76120662c1B3E50A646bf", Chain: "ethereum"},
	"SPX":    {Address: "0xE0f63A424a4439cBE457D80E4f4b51aD25b2c56C", Chain: "ethereum"},
	// Solana
	"WIF":    {Address: "EKpQGSJtjMFqKZ9KQanSqYXRcF8fBopzLHYxdM65zcjm", Chain: "solana"},
	"BONK":   {Address: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Chain: "solana"},
	"POPCAT": {Address: "7GCihgDB8fe6KNjn2MYtkzZcRjQy3t9GHdC8uHYmW2hr", Chain: "solana"},
	// Base
	"BRETT": {Address: "0x532f27101965dd16442E59d40670FaF5eBB142E4", Chain: "base"},
}

// binancePairs maps symbols with an exchange listing to their USDT pair,
// used as a tertiary ticker source when DEX coverage comes up empty.
var binancePairs = map[string]string{
	"DOGE":  "DOGEUSDT",
	"SHIB":  "SHIBUSDT",
	"PEPE":  "PEPEUSDT",
	"FLOKI": "FLOKIUSDT",
	"WIF":   "WIFUSDT",
	"BONK":  "BONKUSDT",
	"MEME":  "MEMEUSDT",
	"TURBO": "TURBOUSDT",
}

// DefaultSymbols is the tracked token set in a stable order.
func DefaultSymbols() []string {
	return []string{
		"DOGE", "SHIB", "PEPE", "WIF", "BONK", "FLOKI", "MOG",
		"BRETT", "POPCAT", "NEIRO", "MEME", "TURBO", "LADYS", "SPX",
	}
}
