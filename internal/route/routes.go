package route

import (
	"net/http"
	"os"
	"path/filepath"

	"helmetwatch/internal/config"
	"helmetwatch/internal/handler"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/middleware"
	"helmetwatch/internal/repository"
	"helmetwatch/internal/service"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", filepath.Clean(path)+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers the viewer pages, camera controls, live view
// endpoints, snapshot archive, logs and metrics, and wraps the mux with
// request logging. snapshotRepo may be nil when archiving is disabled.
func SetupRoutes(manager *service.Manager, cfg *config.Config, logger *logger.Logger,
	metrics *metrics.Metrics, snapshotRepo repository.SnapshotRepository) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Camera control
	mux.HandleFunc("POST /api/camera/start", handler.StartCameraHandler(manager, logger))
	mux.HandleFunc("POST /api/camera/stop", handler.StopCameraHandler(manager, logger))
	mux.HandleFunc("GET /api/status", handler.StatusHandler(manager, logger))

	// Live view
	mux.HandleFunc("/api/view", handler.ViewWebsocketHandler(manager, logger))
	mux.HandleFunc("GET /blob/{id}", handler.BlobHandler(manager))
	mux.HandleFunc("GET /chart.png", handler.ChartHandler(manager, logger))

	// Snapshot archive
	if snapshotRepo != nil {
		mux.HandleFunc("GET /api/snapshots", handler.GetSnapshotsHandler(cfg, logger, snapshotRepo))
		mux.HandleFunc("GET /api/snapshots/view", handler.ViewSnapshotHandler(cfg))
		mux.HandleFunc("POST /api/snapshots/delete", handler.DeleteSnapshotHandler(cfg, logger, snapshotRepo))
		mux.HandleFunc("POST /api/snapshots/clear", handler.ClearSnapshotsHandler(cfg, logger, snapshotRepo))
	}

	// Log endpoints
	mux.HandleFunc("/logs/info", handler.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handler.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handler.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handler.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handler.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handler.ClearErrorLogsHandler(logger))

	mux.Handle("GET /metrics", metrics.Handler())

	// Automatic HTML handler mapping for example: /dashboard -> /static/dashboard.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	return middleware.LoggingMiddleware(logger, mux)
}
