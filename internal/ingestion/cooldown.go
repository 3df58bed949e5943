package ingestion

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CooldownGate tracks, per source, when a rate-limit signal was last
// seen. It is the single owner of that state: the collector asks
// Allow() before a call and Trip()s the gate on a 429. State is
// process-wide per source, not per query.
type CooldownGate struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	cooldown time.Duration
	lastHit  map[string]time.Time
}

func NewCooldownGate(cooldown time.Duration, clock clockwork.Clock) *CooldownGate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CooldownGate{
		clock:    clock,
		cooldown: cooldown,
		lastHit:  make(map[string]time.Time),
	}
}

// Allow reports whether the source is outside its cooldown window.
func (g *CooldownGate) Allow(source string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	hit, ok := g.lastHit[source]
	if !ok {
		return true
	}
	return g.clock.Since(hit) >= g.cooldown
}

// Trip records a rate-limit hit for the source at the current time.
func (g *CooldownGate) Trip(source string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastHit[source] = g.clock.Now()
}
