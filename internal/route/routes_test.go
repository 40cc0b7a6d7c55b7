package route

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"helmetwatch/internal/chart"
	"helmetwatch/internal/config"
	"helmetwatch/internal/history"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/schedule"
	"helmetwatch/internal/service"
	"helmetwatch/internal/service/camera"
	"helmetwatch/internal/service/preview"
	"helmetwatch/internal/view"
)

type nullStream struct{}

func (nullStream) NaturalSize() (int, int)        { return 0, 0 }
func (nullStream) DrawInto(dst *image.RGBA) error { return nil }
func (nullStream) Play(ctx context.Context) error { return nil }
func (nullStream) Close() error                   { return nil }

type nullOpener struct{}

func (nullOpener) Open(ctx context.Context, c camera.Constraints) (camera.Stream, error) {
	return nullStream{}, nil
}

type nullRunner struct{}

func (nullRunner) Run(ctx context.Context, token *schedule.Token) {}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{LogDirectory: filepath.Join(dir, "logs")}
	log := logger.New(cfg.LogDirectory, "info")
	m := metrics.New()

	surface := view.NewSurface(nil)
	cam := camera.NewManager(context.Background(), nullOpener{}, surface, nullRunner{}, log, m)
	t.Cleanup(cam.Close)

	manager := service.NewManager(service.Components{
		Camera:    cam,
		Blobs:     preview.NewStore("/blob/"),
		Surface:   surface,
		Dashboard: view.NewDashboard(nil),
		Ring:      history.NewRing(history.Capacity),
		Canvas:    chart.NewCanvas(chart.DefaultWidth, chart.DefaultHeight),
	})
	return SetupRoutes(manager, cfg, log, m, nil)
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/status", http.StatusOK},
		{http.MethodGet, "/api/camera/start", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/camera/start", http.StatusOK},
		{http.MethodPost, "/api/camera/stop", http.StatusOK},
		{http.MethodGet, "/chart.png", http.StatusOK},
		{http.MethodGet, "/blob/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/snapshots", http.StatusNotFound},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/logs/info", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestSetupRoutes_MetricsExposeAgentCounters(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "helmetwatch_camera_active") {
		t.Error("Expected helmetwatch_camera_active in metrics output")
	}
}
