package filter

import (
	"context"
	"path/filepath"

	zlog "github.com/rs/zerolog/log"
)

// Chain executes filters in sequence and tallies rejection codes.
// A Chain belongs to one generation run and is not safe for concurrent use.
type Chain struct {
	filters  []Filter
	rejected map[string]int
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters:  make([]Filter, 0),
		rejected: make(map[string]int),
	}
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence and stops at the first rejection.
func (c *Chain) Execute(ctx context.Context, cand Candidate) Result {
	for _, f := range c.filters {
		result := f.Check(ctx, cand)
		if result.Accepted {
			continue
		}
		c.rejected[result.Code]++
		zlog.Debug().Msgf("candidate rejected: filter=%s code=%s file=%s", f.Name(), result.Code, filepath.Base(cand.Path))
		return result
	}
	return Accept()
}

// TakeRejections returns the rejection counts by code since the last call
// and clears them.
func (c *Chain) TakeRejections() map[string]int {
	out := c.rejected
	c.rejected = make(map[string]int)
	return out
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
