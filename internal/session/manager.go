package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/navigation"
	"github.com/packlane/storefront/internal/orders"
	"github.com/packlane/storefront/pkg/config"
	"github.com/packlane/storefront/pkg/enums"
	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/logger"
	"github.com/packlane/storefront/pkg/metrics"
)

// Session is the explicit per-visitor context: one cart ledger and one
// navigation machine, threaded through handlers instead of living as
// ambient globals.
type Session struct {
	ID     uuid.UUID
	Cart   *cart.Ledger
	Nav    *navigation.Machine
	Detail *catalog.DetailLoader

	mu       sync.Mutex
	orders   map[string]orders.Order
	lastSeen time.Time
}

// RecordOrder keeps a completed order addressable for receipt rendering.
func (s *Session) RecordOrder(order orders.Order) {
	s.mu.Lock()
	if s.orders == nil {
		s.orders = make(map[string]orders.Order)
	}
	s.orders[order.ID] = order
	s.mu.Unlock()
}

// Order returns a completed order by id.
func (s *Session) Order(id string) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// Manager owns session lifecycle: created on demand, evicted after the idle
// TTL, torn down with the process.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	ttl     time.Duration
	sweep   time.Duration
	policy  enums.CheckoutBackPolicy
	source  catalog.Source
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewManager builds a session manager from the session config, the
// checkout-back policy handed to every new navigation machine, and the
// catalog source backing each session's detail loader. The source may be
// nil when no detail fetching is needed.
func NewManager(cfg config.SessionConfig, policy enums.CheckoutBackPolicy, src catalog.Source, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if cfg.SweepInterval <= 0 {
		return nil, fmt.Errorf("session sweep interval must be positive")
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      cfg.TTL,
		sweep:    cfg.SweepInterval,
		policy:   policy,
		source:   src,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Create starts a fresh session with an empty cart on the listing view.
func (m *Manager) Create() *Session {
	sess := &Session{
		ID:   uuid.New(),
		Cart: cart.NewLedger(m.metrics),
		Nav:  navigation.NewMachine(m.policy),
	}
	if m.source != nil {
		sess.Detail = catalog.NewDetailLoader(m.source)
	}
	m.mu.Lock()
	sess.lastSeen = m.now()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

// Get returns the session and refreshes its idle clock. Unknown or expired
// ids answer NOT_FOUND.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	if m.now().Sub(sess.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}
	sess.lastSeen = m.now()
	return sess, nil
}

// Delete drops the session if present.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until the context is canceled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := m.evictIdle(); evicted > 0 && m.logg != nil {
				m.logg.Info(m.logg.WithField(ctx, "evicted", evicted), "session.sweep")
			}
		}
	}
}

func (m *Manager) evictIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	evicted := 0
	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}
