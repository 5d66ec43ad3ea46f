package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConfiguratorMetrics tracks the configurator's domain events.
type ConfiguratorMetrics struct {
	sessionsCreated   prometheus.Counter
	stockRefreshes    prometheus.Counter
	stockStaleDropped prometheus.Counter
	leadsSubmitted    prometheus.Counter
}

// NewConfiguratorMetrics registers the configurator counters on the provided
// registerer.
func NewConfiguratorMetrics(reg prometheus.Registerer) *ConfiguratorMetrics {
	if reg == nil {
		return &ConfiguratorMetrics{}
	}
	m := &ConfiguratorMetrics{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "configurator_sessions_created_total",
			Help: "Configurator sessions created.",
		}),
		stockRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "configurator_stock_refreshes_total",
			Help: "Dealer stock refresh requests.",
		}),
		stockStaleDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "configurator_stock_stale_dropped_total",
			Help: "Stock responses discarded because a newer request superseded them.",
		}),
		leadsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "configurator_leads_submitted_total",
			Help: "Order leads submitted.",
		}),
	}
	reg.MustRegister(m.sessionsCreated, m.stockRefreshes, m.stockStaleDropped, m.leadsSubmitted)
	return m
}

// IncSessionsCreated counts a new session.
func (m *ConfiguratorMetrics) IncSessionsCreated() {
	if m == nil || m.sessionsCreated == nil {
		return
	}
	m.sessionsCreated.Inc()
}

// IncStockRefreshes counts a stock refresh request.
func (m *ConfiguratorMetrics) IncStockRefreshes() {
	if m == nil || m.stockRefreshes == nil {
		return
	}
	m.stockRefreshes.Inc()
}

// StaleDrops returns the discarded-stock counter in the shape the session
// service consumes.
func (m *ConfiguratorMetrics) StaleDrops() StaleDropCounter {
	return StaleDropCounter{m: m}
}

// StaleDropCounter adapts the stale-drop counter to a plain Inc surface.
type StaleDropCounter struct {
	m *ConfiguratorMetrics
}

func (c StaleDropCounter) Inc() {
	if c.m == nil || c.m.stockStaleDropped == nil {
		return
	}
	c.m.stockStaleDropped.Inc()
}

// IncLeadsSubmitted counts a submitted lead.
func (m *ConfiguratorMetrics) IncLeadsSubmitted() {
	if m == nil || m.leadsSubmitted == nil {
		return
	}
	m.leadsSubmitted.Inc()
}
