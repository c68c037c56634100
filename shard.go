package payrun

import (
	"context"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Rejection reports a transaction the engine refused, together with the
// execution error. Sharded runs deliver rejections through a callback because
// workers apply records concurrently.
type Rejection struct {
	Transaction Transaction
	Err         error
}

// Sharded runs one independent engine per shard, partitioning the stream by
// account id. Transactions for different accounts are independent, so shards
// never share state; records for the same account always land on the same
// shard and are applied in submission order.
//
// Dispute-family records are routed by the account column they carry. A
// dispute naming a different account than the settlement's owner lands on the
// wrong shard and is rejected with ErrTransactionNotFound.
type Sharded struct {
	engines []*Engine
	queues  []chan Transaction
	group   *errgroup.Group
	reject  func(Rejection)
}

// NewSharded creates a sharded run with n engines and starts its workers.
// The reject callback receives every refused transaction; it is called from
// worker goroutines and must be safe for concurrent use. It may be nil.
func NewSharded(ctx context.Context, n int, reject func(Rejection)) *Sharded {
	if n < 1 {
		n = 1
	}
	s := &Sharded{
		engines: make([]*Engine, n),
		queues:  make([]chan Transaction, n),
		reject:  reject,
	}
	s.group, _ = errgroup.WithContext(ctx)
	for i := range n {
		engine := NewEngine()
		queue := make(chan Transaction, 256)
		s.engines[i] = engine
		s.queues[i] = queue
		s.group.Go(func() error {
			for t := range queue {
				if err := engine.Execute(t); err != nil && s.reject != nil {
					s.reject(Rejection{Transaction: t, Err: err})
				}
			}
			return nil
		})
	}
	return s
}

// Submit routes one transaction to its shard. It must not be called after
// Wait.
func (s *Sharded) Submit(t Transaction) {
	s.queues[int(t.Account())%len(s.queues)] <- t
}

// Wait closes the shard queues and blocks until every worker has drained its
// backlog.
func (s *Sharded) Wait() error {
	for _, queue := range s.queues {
		close(queue)
	}
	return s.group.Wait()
}

// Accounts yields the accounts of every shard merged, ascending by id. Only
// valid after Wait.
func (s *Sharded) Accounts() iter.Seq[*Account] {
	var all []*Account
	for _, engine := range s.engines {
		for account := range engine.Accounts() {
			all = append(all, account)
		}
	}
	slices.SortFunc(all, func(a, b *Account) int { return int(a.ID) - int(b.ID) })
	return slices.Values(all)
}
