package quota

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/textgate/pkg/plan"
)

// record holds one (identity, period) counter.
type record struct {
	used       int64
	tier       plan.Tier
	updatedAt  time.Time
	lastAccess time.Time // used by cleanup to identify stale records
}

// MemoryLedger implements Ledger with a mutexed process-local map.
//
// Like MemoryStore in the plan package, this is a degraded-mode
// fallback and test double: counts are scoped to a single process
// instance and are NOT correct when the gateway runs as multiple
// replicas. Atomicity per identity is provided by the ledger mutex.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[string]*record

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryLedgerOption configures a MemoryLedger.
type MemoryLedgerOption func(*MemoryLedger)

// WithCleanupInterval sets how often stale records are purged.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryLedgerOption {
	return func(l *MemoryLedger) {
		l.cleanupInterval = interval
	}
}

func NewMemoryLedger(opts ...MemoryLedgerOption) *MemoryLedger {
	l := &MemoryLedger{
		records:         make(map[string]*record),
		cleanupInterval: 1 * time.Hour,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.cleanupInterval > 0 {
		go l.cleanup()
	}

	return l
}

func (l *MemoryLedger) CheckAndConsume(_ context.Context, identity string, p plan.Plan, period Period) (Result, error) {
	limit := p.MonthlyLimit
	if limit < 0 && limit != plan.Unlimited {
		return Result{}, ErrInvalidLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	key := recordKey(identity, period)

	rec, ok := l.records[key]
	if !ok {
		rec = &record{}
		l.records[key] = rec
	}
	rec.lastAccess = now

	if limit != plan.Unlimited && rec.used >= limit {
		return Result{Allowed: false, Used: rec.used, Limit: limit, Remaining: 0}, nil
	}

	rec.used++
	rec.tier = p.Tier
	rec.updatedAt = now

	return Result{
		Allowed:   true,
		Used:      rec.used,
		Limit:     limit,
		Remaining: remaining(rec.used, limit),
	}, nil
}

func (l *MemoryLedger) Usage(_ context.Context, identity string, period Period) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[recordKey(identity, period)]
	if !ok {
		return 0, nil
	}
	return rec.used, nil
}

func (l *MemoryLedger) Reset(_ context.Context, identity string, period Period) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.records, recordKey(identity, period))
	return nil
}

func (l *MemoryLedger) cleanup() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeStale()
		case <-l.stopCleanup:
			return
		}
	}
}

// removeStale drops records that have not been touched for two cleanup
// intervals. A record from a past period stops being accessed at the
// month boundary, so it ages out naturally.
func (l *MemoryLedger) removeStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	staleThreshold := 2 * l.cleanupInterval
	now := time.Now()

	for key, rec := range l.records {
		if now.Sub(rec.lastAccess) > staleThreshold {
			delete(l.records, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (l *MemoryLedger) Close() {
	l.closeOnce.Do(func() {
		close(l.stopCleanup)
	})
}
