// Package oracle resolves token symbols to USD prices. A live feed is tried
// first; any failure degrades to a built-in static table, so resolution
// never fails past this boundary. Unknown symbols resolve to price 0.
package oracle

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/yieldscope/portfolio-go-sdk/core"
)

// Oracle is the price adapter composed of a live Source and the static
// fallback table. The optional cache is keyed by symbol with a fixed TTL and
// is read-through: a miss always falls through to the live fetch, it never
// blocks a calculation.
type Oracle struct {
	live     Source
	fallback *StaticSource
	cache    *ristretto.Cache
	ttl      time.Duration
}

// Option configures the Oracle.
type Option func(*Oracle)

// WithCache enables an in-memory price cache with the given TTL.
func WithCache(ttl time.Duration) Option {
	return func(o *Oracle) {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 10_000,
			MaxCost:     1 << 20,
			BufferItems: 64,
		})
		if err != nil {
			log.Printf("[oracle] cache disabled: %v", err)
			return
		}
		o.cache = cache
		o.ttl = ttl
	}
}

// WithFallbackTable replaces the built-in static table.
func WithFallbackTable(table map[string]float64) Option {
	return func(o *Oracle) {
		o.fallback = NewStaticSourceWithTable(table)
	}
}

// New creates an Oracle over the given live source. A nil live source is
// allowed and resolves everything through the static table.
func New(live Source, opts ...Option) *Oracle {
	o := &Oracle{
		live:     live,
		fallback: NewStaticSource(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Prices resolves every requested symbol to a USD price. Symbols are
// uppercase-normalized first. The returned map always has one entry per
// distinct requested symbol; symbols unknown to both the live feed and the
// static table get price 0.
func (o *Oracle) Prices(ctx context.Context, symbols []string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	pending := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		if sym == "" {
			continue
		}
		if _, seen := out[sym]; seen {
			continue
		}
		if price, ok := o.cached(sym); ok {
			out[sym] = price
			continue
		}
		out[sym] = 0
		pending = append(pending, sym)
	}
	if len(pending) == 0 {
		return out
	}

	live := o.fetchLive(ctx, pending)
	for _, sym := range pending {
		if price, ok := live[sym]; ok {
			out[sym] = price
			o.store(sym, price)
			continue
		}
		if price, ok := o.fallback.Lookup(sym); ok {
			out[sym] = price
		}
	}
	return out
}

// Price resolves a single symbol.
func (o *Oracle) Price(ctx context.Context, symbol string) float64 {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	return o.Prices(ctx, []string{sym})[sym]
}

// ResolveAssets turns raw holdings into portfolio assets with resolved
// per-unit USD prices, one batch lookup for the whole portfolio.
func (o *Oracle) ResolveAssets(ctx context.Context, holdings []core.HoldingItem) []core.PortfolioAsset {
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Token)
	}
	prices := o.Prices(ctx, symbols)

	assets := make([]core.PortfolioAsset, 0, len(holdings))
	for _, h := range holdings {
		sym := strings.ToUpper(strings.TrimSpace(h.Token))
		assets = append(assets, core.PortfolioAsset{
			Token:    sym,
			Amount:   h.Amount,
			PriceUSD: prices[sym],
		})
	}
	return assets
}

func (o *Oracle) fetchLive(ctx context.Context, symbols []string) map[string]float64 {
	if o.live == nil {
		return nil
	}
	prices, err := o.live.Prices(ctx, symbols)
	if err != nil {
		log.Printf("[oracle] %s unavailable, using static table: %v", o.live.Name(), err)
		return nil
	}
	return prices
}

func (o *Oracle) cached(symbol string) (float64, bool) {
	if o.cache == nil {
		return 0, false
	}
	v, ok := o.cache.Get(symbol)
	if !ok {
		return 0, false
	}
	price, ok := v.(float64)
	return price, ok
}

func (o *Oracle) store(symbol string, price float64) {
	if o.cache == nil {
		return
	}
	o.cache.SetWithTTL(symbol, price, 1, o.ttl)
	// Flush the set buffer so a batch's prices are visible to the next call.
	o.cache.Wait()
}
