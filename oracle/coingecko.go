package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

const defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// coinIDs maps canonical token symbols to CoinGecko coin identifiers.
// Symbols outside this map cannot be queried live and resolve through the
// static table instead.
var coinIDs = map[string]string{
	"ETH":   "ethereum",
	"WETH":  "weth",
	"BTC":   "bitcoin",
	"WBTC":  "wrapped-bitcoin",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"DAI":   "dai",
	"AAVE":  "aave",
	"UNI":   "uniswap",
	"LINK":  "chainlink",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"MATIC": "matic-network",
	"SOL":   "solana",
	"AVAX":  "avalanche-2",
}

// CoinGeckoSource fetches spot prices from the CoinGecko simple-price API.
// One request covers the whole batch; a non-200 status or malformed body is
// a total failure, never a partial result.
type CoinGeckoSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoSource creates a CoinGecko client against the public API.
func NewCoinGeckoSource() *CoinGeckoSource {
	return NewCoinGeckoSourceWithURL(defaultCoinGeckoURL)
}

// NewCoinGeckoSourceWithURL creates a CoinGecko client against a custom base
// URL, used for proxies and tests.
func NewCoinGeckoSourceWithURL(baseURL string) *CoinGeckoSource {
	return &CoinGeckoSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Prices performs one batched simple-price lookup. Errors wrap
// core.ErrUpstreamUnavailable so the Oracle can recognize feed failure.
func (c *CoinGeckoSource) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	ids := make([]string, 0, len(symbols))
	bySymbol := make(map[string]string, len(symbols)) // coin id -> symbol
	for _, sym := range symbols {
		id, ok := coinIDs[sym]
		if !ok {
			continue
		}
		ids = append(ids, id)
		bySymbol[id] = sym
	}
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch prices: %v", core.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: price feed status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", core.ErrUpstreamUnavailable, err)
	}

	var parsed map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", core.ErrUpstreamUnavailable, err)
	}

	out := make(map[string]float64, len(parsed))
	for id, entry := range parsed {
		if sym, ok := bySymbol[id]; ok {
			out[sym] = entry.USD
		}
	}
	return out, nil
}

func (c *CoinGeckoSource) Name() string { return "coingecko" }
