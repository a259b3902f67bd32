package agent

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"

	"azquote-api/pkg/bom"
)

// zeroPriceNote annotates line items the catalog could not price.
const zeroPriceNote = "pricing data not found"

// PriceResolver resolves an hourly retail price, returning 0.0 for unknown
// SKUs or lookup failures. pricing.Client satisfies this.
type PriceResolver interface {
	GetPrice(ctx context.Context, serviceName, sku, region string) float64
}

// PricedItem is one costed line of the quote.
type PricedItem struct {
	ServiceName   string  `json:"serviceName"`
	SKU           string  `json:"sku"`
	Region        string  `json:"region"`
	Quantity      float64 `json:"quantity"`
	HoursPerMonth float64 `json:"hoursPerMonth"`
	HourlyPrice   float64 `json:"hourlyPrice"`
	MonthlyCost   float64 `json:"monthlyCost"`
	Note          string  `json:"note,omitempty"`
}

// PricedQuote aggregates the costed lines.
type PricedQuote struct {
	Items        []PricedItem `json:"items"`
	TotalMonthly float64      `json:"totalMonthly"`
	Currency     string       `json:"currency"`
}

// Pricer prices a validated BOM by fanning lookups out across the resolver.
type Pricer struct {
	resolver PriceResolver
	currency string
	workers  int
}

// NewPricer builds a Pricer. workers <= 0 falls back to the package default.
func NewPricer(resolver PriceResolver, currency string, workers int) *Pricer {
	if workers <= 0 {
		workers = defaultPricingWorkers
	}
	return &Pricer{resolver: resolver, currency: currency, workers: workers}
}

// PriceBOM resolves every line item concurrently and returns the quote with
// items in their original order. Unpriced items carry a zero monthly cost and
// an explanatory note instead of failing the quote.
func (p *Pricer) PriceBOM(ctx context.Context, items []bom.LineItem) PricedQuote {
	results := make([]PricedItem, len(items))

	type indexed struct {
		idx  int
		item bom.LineItem
	}

	mr.ForEach(func(source chan<- indexed) {
		for i, item := range items {
			source <- indexed{idx: i, item: item}
		}
	}, func(in indexed) {
		item := in.item
		price := p.resolver.GetPrice(ctx, item.ServiceName, item.SKU, item.ARMRegionName)

		priced := PricedItem{
			ServiceName:   item.ServiceName,
			SKU:           item.SKU,
			Region:        item.Region,
			Quantity:      item.Quantity,
			HoursPerMonth: item.HoursPerMonth,
			HourlyPrice:   price,
			MonthlyCost:   price * item.Quantity * item.HoursPerMonth,
		}
		if price == 0 {
			priced.Note = zeroPriceNote
			logx.WithContext(ctx).Slowf("agent: no price for %s / %s in %s",
				item.ServiceName, item.SKU, item.ARMRegionName)
		}
		results[in.idx] = priced
	}, mr.WithWorkers(p.workers))

	quote := PricedQuote{Items: results, Currency: p.currency}
	for _, item := range results {
		quote.TotalMonthly += item.MonthlyCost
	}
	return quote
}
