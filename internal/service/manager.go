package service

import (
	"helmetwatch/internal/chart"
	"helmetwatch/internal/dto"
	"helmetwatch/internal/history"
	"helmetwatch/internal/service/camera"
	"helmetwatch/internal/service/preview"
	"helmetwatch/internal/service/stats"
	"helmetwatch/internal/service/storage"
	"helmetwatch/internal/service/websocket"
	"helmetwatch/internal/view"
)

// Manager gathers the running services so handlers can reach them.
type Manager struct {
	camera           *camera.Manager
	poller           *stats.Poller
	bufferService    *storage.BufferService
	websocketService *websocket.HubService
	blobs            *preview.Store
	surface          *view.Surface
	dashboard        *view.Dashboard
	ring             *history.Ring
	canvas           *chart.Canvas
}

// Components are the pieces a Manager is built from. BufferService may
// be nil when archiving is disabled.
type Components struct {
	Camera        *camera.Manager
	Poller        *stats.Poller
	BufferService *storage.BufferService
	Hub           *websocket.HubService
	Blobs         *preview.Store
	Surface       *view.Surface
	Dashboard     *view.Dashboard
	Ring          *history.Ring
	Canvas        *chart.Canvas
}

func NewManager(c Components) *Manager {
	return &Manager{
		camera:           c.Camera,
		poller:           c.Poller,
		bufferService:    c.BufferService,
		websocketService: c.Hub,
		blobs:            c.Blobs,
		surface:          c.Surface,
		dashboard:        c.Dashboard,
		ring:             c.Ring,
		canvas:           c.Canvas,
	}
}

func (m *Manager) GetCamera() *camera.Manager {
	return m.camera
}
func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.websocketService
}
func (m *Manager) GetBufferService() *storage.BufferService {
	return m.bufferService
}
func (m *Manager) GetBlobs() *preview.Store {
	return m.blobs
}
func (m *Manager) GetCanvas() *chart.Canvas {
	return m.canvas
}

// Status reports the current agent state.
func (m *Manager) Status() dto.Status {
	shown := m.dashboard.Displayed()
	status := dto.Status{
		Running:   m.camera.IsRunning(),
		SessionID: m.camera.SessionID(),
		Poster:    m.surface.Poster(),
		Count:     shown.NoHelmet,
		Date:      shown.Date,
		Time:      shown.Time,
		History:   m.ring.Values(),
	}
	if m.poller != nil {
		status.ConsecutiveFailures = m.poller.ConsecutiveFailures()
	}
	if m.websocketService != nil {
		status.Viewers = m.websocketService.GetClientCount()
	}
	return status
}

// Snapshot returns the events that bring a newly connected viewer up to
// date.
func (m *Manager) Snapshot() []dto.ViewEvent {
	status := m.Status()
	running := status.Running
	count := status.Count

	events := []dto.ViewEvent{
		{Type: dto.EventCamera, Running: &running},
		{Type: dto.EventPoster, URL: status.Poster},
	}
	if status.Date != "" {
		events = append(events, dto.ViewEvent{Type: dto.EventStats, Count: &count, Date: status.Date, Time: status.Time})
	}
	if v := m.canvas.Version(); v > 0 {
		events = append(events, dto.ViewEvent{Type: dto.EventChart, URL: "/chart.png", Version: v})
	}
	return events
}
