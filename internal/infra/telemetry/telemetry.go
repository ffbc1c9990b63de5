package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
)

// Provider represents a telemetry provider handle.
type Provider struct {
	startTime prometheus.Gauge
}

// Attach registers process-level collectors and returns a provider handle.
// Per-request collectors live in the HTTP metrics middleware.
func Attach(_ context.Context, cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	startTime := promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "users",
		Name:        "service_start_timestamp_seconds",
		Help:        "Unix timestamp at which the service started.",
		ConstLabels: prometheus.Labels{"env": cfg.App.Env},
	})
	startTime.Set(float64(time.Now().Unix()))

	return &Provider{
		startTime: startTime,
	}, nil
}

// StartTime exposes the service start gauge.
func (p *Provider) StartTime() prometheus.Gauge {
	if p == nil {
		return prometheus.NewGauge(prometheus.GaugeOpts{})
	}
	return p.startTime
}
