package metrics

import (
	"frogbot/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
)

type Prometheus struct {
	fetchFailures prometheus.Counter
	updates       prometheus.Counter
	duplicates    prometheus.Counter
	commands      *prometheus.CounterVec
	replyFailures prometheus.Counter
	offset        prometheus.Gauge
}

// NewPrometheus creates the loop collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frogbot_fetch_failures_total",
			Help: "Number of failed update fetches",
		}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frogbot_updates_received_total",
			Help: "Number of updates received, duplicates included",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frogbot_updates_duplicate_total",
			Help: "Number of redelivered updates that were skipped",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frogbot_commands_dispatched_total",
			Help: "Number of dispatched commands",
		}, []string{"command"}),
		replyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frogbot_reply_failures_total",
			Help: "Number of replies that could not be sent",
		}),
		offset: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frogbot_last_update_id",
			Help: "Highest acknowledged update ID",
		}),
	}

	collectors := []prometheus.Collector{
		p.fetchFailures, p.updates, p.duplicates, p.commands, p.replyFailures, p.offset,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Prometheus) FetchFailed() {
	p.fetchFailures.Inc()
}

func (p *Prometheus) UpdateReceived() {
	p.updates.Inc()
}

func (p *Prometheus) DuplicateSkipped() {
	p.duplicates.Inc()
}

func (p *Prometheus) CommandDispatched(kind domain.CommandKind) {
	p.commands.WithLabelValues(kind.String()).Inc()
}

func (p *Prometheus) ReplyFailed() {
	p.replyFailures.Inc()
}

func (p *Prometheus) Offset(id int64) {
	p.offset.Set(float64(id))
}

// Noop discards everything, used when metrics are disabled.
type Noop struct{}

func (Noop) FetchFailed()                           {}
func (Noop) UpdateReceived()                        {}
func (Noop) DuplicateSkipped()                      {}
func (Noop) CommandDispatched(_ domain.CommandKind) {}
func (Noop) ReplyFailed()                           {}
func (Noop) Offset(_ int64)                         {}
