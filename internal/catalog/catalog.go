package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
)

// ServiceOffer is one sellable entry in the price list.
type ServiceOffer struct {
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Audience string `json:"audience,omitempty"`
	Price    int    `json:"price"`
	Note     string `json:"note,omitempty"`
}

// Source loads the ordered price list from a backing medium.
type Source interface {
	Load(ctx context.Context) ([]ServiceOffer, error)
}

// Catalog holds the current price list and supports refresh without
// interrupting readers. Readers always see a complete snapshot.
type Catalog struct {
	source Source
	offers atomic.Pointer[[]ServiceOffer]
}

// New creates a catalog backed by the given source and performs the
// initial load.
func New(ctx context.Context, source Source) (*Catalog, error) {
	c := &Catalog{source: source}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh reloads the price list from the source. On failure the previous
// snapshot stays in place.
func (c *Catalog) Refresh(ctx context.Context) error {
	offers, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("catalog: failed to load offers: %w", err)
	}
	c.offers.Store(&offers)
	return nil
}

// Offers returns the current snapshot of the price list.
func (c *Catalog) Offers() []ServiceOffer {
	p := c.offers.Load()
	if p == nil {
		return nil
	}
	return *p
}

// StaticSource serves a fixed list of offers, mainly for tests and seeding.
type StaticSource []ServiceOffer

func (s StaticSource) Load(context.Context) ([]ServiceOffer, error) {
	return s, nil
}
