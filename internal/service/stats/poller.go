// Package stats polls the statistics endpoint and feeds the trend chart.
package stats

import (
	"context"
	"sync"
	"time"

	"helmetwatch/internal/chart"
	"helmetwatch/internal/history"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/model"
	"helmetwatch/internal/schedule"
)

// Interval is the fixed polling period.
const Interval = 2 * time.Second

// Fetcher retrieves the current statistic.
type Fetcher interface {
	Fetch(ctx context.Context) (model.StatSample, error)
}

// Display shows the latest sample and the redrawn chart.
type Display interface {
	Show(sample model.StatSample)
	ChartRendered(version uint64)
}

// Poller appends every fetched count to the history ring and redraws the
// chart. A failed poll leaves everything as it was; the next tick is the
// retry.
type Poller struct {
	fetcher Fetcher
	display Display
	ring    *history.Ring
	canvas  *chart.Canvas
	logger  *logger.Logger
	metrics *metrics.Metrics

	interval time.Duration

	mu       sync.Mutex
	token    *schedule.Token
	failures int
	wg       sync.WaitGroup
}

// NewPoller creates a stopped poller.
func NewPoller(fetcher Fetcher, display Display, ring *history.Ring, canvas *chart.Canvas, logger *logger.Logger, metrics *metrics.Metrics) *Poller {
	return &Poller{
		fetcher:  fetcher,
		display:  display,
		ring:     ring,
		canvas:   canvas,
		logger:   logger,
		metrics:  metrics,
		interval: Interval,
	}
}

// Start begins polling in the background. It does nothing if already started.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != nil {
		return
	}
	token := schedule.NewToken()
	p.token = token

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		schedule.FixedRate(ctx, token, p.interval, p.poll)
	}()
	p.logger.Info("📊 Stats poller started (every %v)", p.interval)
}

// Stop halts polling and waits for the running poll to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	token := p.token
	p.token = nil
	p.mu.Unlock()

	if token == nil {
		return
	}
	token.Cancel()
	p.wg.Wait()
	p.logger.Info("📊 Stats poller stopped")
}

// ConsecutiveFailures returns the number of polls failed since the last
// success.
func (p *Poller) ConsecutiveFailures() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures
}

func (p *Poller) poll(ctx context.Context) {
	sample, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.mu.Lock()
		p.failures++
		failures := p.failures
		p.mu.Unlock()

		p.metrics.StatsFailures.Inc()
		p.metrics.ConsecutiveStatsFailures.Set(float64(failures))
		p.logger.Debug("Stats poll skipped: %v", err)
		return
	}

	p.mu.Lock()
	p.failures = 0
	p.mu.Unlock()
	p.metrics.StatsPolls.Inc()
	p.metrics.ConsecutiveStatsFailures.Set(0)

	p.display.Show(sample)
	p.ring.Append(sample.NoHelmet)

	if err := p.canvas.Render(p.ring.Values()); err != nil {
		p.logger.Warning("Failed to render trend chart: %v", err)
		return
	}
	p.display.ChartRendered(p.canvas.Version())
}
