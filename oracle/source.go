package oracle

import "context"

// Source supplies USD prices for a batch of token symbols.
// Symbols are already uppercase-canonical when a Source sees them.
// A Source may omit symbols it does not know; the Oracle resolves the gaps.
type Source interface {
	// Prices returns a symbol -> USD price mapping for the requested batch.
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
	Name() string
}

// defaultTable is the built-in fallback price table. Values match the
// reference snapshot used when no live feed is reachable.
var defaultTable = map[string]float64{
	"ETH":   2000,
	"WETH":  2000,
	"WBTC":  35000,
	"BTC":   35000,
	"USDC":  1,
	"USDT":  1,
	"DAI":   1,
	"AAVE":  80,
	"UNI":   5,
	"LINK":  15,
	"ARB":   1.2,
	"OP":    2.5,
	"MATIC": 0.8,
	"SOL":   100,
	"AVAX":  30,
}

// StaticSource serves prices from an in-memory table. It never fails and is
// the terminal fallback when the live feed is unavailable.
type StaticSource struct {
	table map[string]float64
}

// NewStaticSource returns a StaticSource with the built-in table.
func NewStaticSource() *StaticSource {
	return NewStaticSourceWithTable(defaultTable)
}

// NewStaticSourceWithTable returns a StaticSource serving the given table.
// The table is copied so later mutation by the caller has no effect.
func NewStaticSourceWithTable(table map[string]float64) *StaticSource {
	copied := make(map[string]float64, len(table))
	for sym, price := range table {
		copied[sym] = price
	}
	return &StaticSource{table: copied}
}

// Prices returns entries for every requested symbol present in the table.
// Unknown symbols are omitted, never errored.
func (s *StaticSource) Prices(_ context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if price, ok := s.table[sym]; ok {
			out[sym] = price
		}
	}
	return out, nil
}

// Lookup returns the table price for one symbol.
func (s *StaticSource) Lookup(symbol string) (float64, bool) {
	price, ok := s.table[symbol]
	return price, ok
}

func (s *StaticSource) Name() string { return "static" }
