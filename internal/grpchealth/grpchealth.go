// Package grpchealth serves the standard gRPC health service with a status
// that follows content store connectivity.
package grpchealth

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// StoreService is the service name whose status tracks the content store.
// The empty name reports overall server health.
const StoreService = "portfolio.ContentStore"

// Monitor polls a store and publishes its reachability.
type Monitor struct {
	hs       *health.Server
	pinger   data.Pinger
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

// New returns a Monitor that starts as NOT_SERVING until the first check.
func New(p data.Pinger, interval time.Duration, log zerolog.Logger) *Monitor {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(StoreService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Monitor{hs: hs, pinger: p, interval: interval, timeout: 2 * time.Second, log: log}
}

// Register attaches the health service to s.
func (m *Monitor) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, m.hs)
}

// Check pings the store once and updates the published status.
func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	err := m.pinger.Ping(ctx)
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		m.log.Warn().Err(err).Msg("content store ping failed")
	}
	m.hs.SetServingStatus("", status)
	m.hs.SetServingStatus(StoreService, status)
	return err == nil
}

// Run checks on every interval until ctx is cancelled, then marks every
// service NOT_SERVING so watchers see the shutdown.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			m.hs.Shutdown()
			return
		}
	}
}
