package metrics

import "sync/atomic"

// Collector counts requests, errors, and the two workflow outcomes that
// matter operationally: submissions handed off and tracking lookups served.
type Collector struct {
	requests    uint64
	errors      uint64
	submissions uint64
	lookups     uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) IncSubmissions() {
	atomic.AddUint64(&c.submissions, 1)
}

func (c *Collector) IncLookups() {
	atomic.AddUint64(&c.lookups, 1)
}

type Snapshot struct {
	Requests    uint64
	Errors      uint64
	Submissions uint64
	Lookups     uint64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:    atomic.LoadUint64(&c.requests),
		Errors:      atomic.LoadUint64(&c.errors),
		Submissions: atomic.LoadUint64(&c.submissions),
		Lookups:     atomic.LoadUint64(&c.lookups),
	}
}
