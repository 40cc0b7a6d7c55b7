// Package camera owns the camera session: acquiring the stream, binding
// it to the video surface and running the capture loop while active.
package camera

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"helmetwatch/internal/dto"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/schedule"
	"helmetwatch/internal/view"
)

// Binder is the surface a stream is displayed on.
type Binder interface {
	Attach(src view.Source)
	Detach()
}

// Runner is the loop driven while a session is active.
type Runner interface {
	Run(ctx context.Context, token *schedule.Token)
}

type session struct {
	id     string
	stream Stream
	token  *schedule.Token
}

// Manager holds at most one active camera session.
type Manager struct {
	startMu  sync.Mutex
	mu       sync.Mutex
	ctx      context.Context
	opener   Opener
	surface  Binder
	runner   Runner
	notifier view.Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics

	current *session
	lastRun chan struct{}
	wg      sync.WaitGroup
}

// NewManager creates a stopped manager. Loops started by the manager run
// with ctx, so in-flight requests outlive Stop but not process shutdown.
func NewManager(ctx context.Context, opener Opener, surface Binder, runner Runner, logger *logger.Logger, metrics *metrics.Metrics) *Manager {
	return &Manager{
		ctx:     ctx,
		opener:  opener,
		surface: surface,
		runner:  runner,
		logger:  logger,
		metrics: metrics,
	}
}

// WithNotifier publishes camera state changes to n.
func (m *Manager) WithNotifier(n view.Notifier) *Manager {
	m.notifier = n
	return m
}

// Start opens the rear camera, binds it to the surface and starts the
// capture loop. It is a no-op when a session is already active.
//
// The device is opened without holding the state lock, so status calls
// stay responsive while a slow camera comes up. A loop started right
// after Stop waits for the previous loop's in-flight upload to finish,
// keeping at most one capture cycle in flight.
func (m *Manager) Start(ctx context.Context) error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.IsRunning() {
		return nil
	}

	stream, err := m.opener.Open(ctx, Constraints{FacingMode: FacingEnvironment, Audio: false})
	if err != nil {
		m.logger.Error("Failed to access camera: %v", err)
		return fmt.Errorf("%w: %v", ErrMediaAcquisition, err)
	}

	m.surface.Attach(stream)
	if err := stream.Play(ctx); err != nil {
		m.surface.Detach()
		stream.Close()
		m.logger.Error("Failed to start camera playback: %v", err)
		return fmt.Errorf("%w: %v", ErrMediaAcquisition, err)
	}

	s := &session{
		id:     uuid.NewString(),
		stream: stream,
		token:  schedule.NewToken(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = s
	previous := m.lastRun
	finished := make(chan struct{})
	m.lastRun = finished

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(finished)
		if previous != nil {
			select {
			case <-previous:
			case <-m.ctx.Done():
				return
			}
		}
		m.runner.Run(m.ctx, s.token)
	}()

	m.metrics.CameraActive.Set(1)
	m.logger.Info("📷 Camera session %s started", s.id)
	m.publish(true)
	return nil
}

// Stop ends the active session: the loop stops before its next
// iteration, the stream is closed and the surface is detached. Calling
// Stop with no active session does nothing.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.current
	if s == nil {
		return
	}
	m.current = nil

	s.token.Cancel()
	m.surface.Detach()
	if err := s.stream.Close(); err != nil {
		m.logger.Warning("Failed to close camera stream: %v", err)
	}

	m.metrics.CameraActive.Set(0)
	m.logger.Info("📷 Camera session %s stopped", s.id)
	m.publish(false)
}

// IsRunning reports whether a session is active.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// SessionID returns the active session's ID, or "".
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ""
	}
	return m.current.id
}

// Close stops the session and waits for every loop started by the
// manager to return.
func (m *Manager) Close() {
	m.Stop()
	m.wg.Wait()
}

func (m *Manager) publish(running bool) {
	if m.notifier != nil {
		m.notifier.Publish(dto.ViewEvent{Type: dto.EventCamera, Running: &running})
	}
}
