package server

import "sync/atomic"

// ConnCounter hands out process-wide connection ids starting at 1.
type ConnCounter struct {
	last atomic.Uint64
}

// Next returns a fresh id, strictly greater than every id returned before.
func (c *ConnCounter) Next() uint64 {
	return c.last.Add(1)
}

// Issued returns how many ids have been handed out.
func (c *ConnCounter) Issued() uint64 {
	return c.last.Load()
}
