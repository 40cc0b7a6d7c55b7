package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"helmetwatch/internal/chart"
	"helmetwatch/internal/client"
	"helmetwatch/internal/config"
	"helmetwatch/internal/encoder"
	"helmetwatch/internal/history"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/repository"
	"helmetwatch/internal/repository/sqlite"
	"helmetwatch/internal/route"
	"helmetwatch/internal/service"
	"helmetwatch/internal/service/camera"
	"helmetwatch/internal/service/camera/gocvcam"
	"helmetwatch/internal/service/capture"
	"helmetwatch/internal/service/preview"
	"helmetwatch/internal/service/stats"
	"helmetwatch/internal/service/storage"
	"helmetwatch/internal/service/websocket"
	"helmetwatch/internal/view"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config        *config.Config
	logger        *logger.Logger
	metrics       *metrics.Metrics
	db            *sqlite.DB
	snapshotRepo  repository.SnapshotRepository
	bufferService *storage.BufferService
	hubService    *websocket.HubService
	preview       *preview.Slot
	camera        *camera.Manager
	poller        *stats.Poller
	manager       *service.Manager

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)
	m := metrics.New()
	ctx, cancel := context.WithCancel(context.Background())

	hub := websocket.NewHubService(log)
	surface := view.NewSurface(hub)
	dashboard := view.NewDashboard(hub)

	blobs := preview.NewStore("/blob/")
	slot := preview.NewSlot(blobs, surface)

	httpClient := client.NewHTTPClient(cfg.RequestTimeout)
	loop := capture.NewLoop(surface, encoder.NewJPEG(), client.NewDetectClient(cfg.ServerURL, httpClient), slot, log, m)

	a := &App{
		config:     cfg,
		logger:     log,
		metrics:    m,
		hubService: hub,
		preview:    slot,
		ctx:        ctx,
		cancel:     cancel,
	}

	if cfg.SnapshotEnabled {
		db, err := sqlite.New(cfg.SnapshotDatabase)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to open snapshot database: %w", err)
		}
		a.db = db
		a.snapshotRepo = sqlite.NewSnapshotRepository(db)
		a.bufferService = storage.NewBufferService(cfg, log, m, a.snapshotRepo)
		loop.WithArchive(a.bufferService, cfg.CameraName)
	}

	opener := gocvcam.NewOpener(cfg.CameraDevice, cfg.CameraDeviceUser, log)
	a.camera = camera.NewManager(ctx, opener, surface, loop, log, m).WithNotifier(hub)

	ring := history.NewRing(history.Capacity)
	canvas := chart.NewCanvas(chart.DefaultWidth, chart.DefaultHeight)
	a.poller = stats.NewPoller(client.NewStatsClient(cfg.ServerURL, httpClient), dashboard, ring, canvas, log, m)

	a.manager = service.NewManager(service.Components{
		Camera:        a.camera,
		Poller:        a.poller,
		BufferService: a.bufferService,
		Hub:           hub,
		Blobs:         blobs,
		Surface:       surface,
		Dashboard:     dashboard,
		Ring:          ring,
		Canvas:        canvas,
	})

	return a, nil
}

// Run starts the background services and the viewer, and blocks until
// SIGINT/SIGTERM or a server failure.
func (a *App) Run() error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hubService.Run(a.ctx)
	}()

	if a.bufferService != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.bufferService.Run(a.ctx)
		}()
	}

	a.poller.Start(a.ctx)

	if a.config.Autostart {
		if err := a.camera.Start(a.ctx); err != nil {
			a.logger.Error("Autostart failed: %v", err)
		}
	}

	router := route.SetupRoutes(a.manager, a.config, a.logger, a.metrics, a.snapshotRepo)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.ViewerPort),
		Handler: router,
	}

	fmt.Printf("🪖 Helmet Watch\n")
	fmt.Printf("📍 Viewer: http://localhost:%d\n", a.config.ViewerPort)
	fmt.Printf("🛰️  Detection server: %s\n", a.config.ServerURL)
	if a.bufferService != nil {
		fmt.Printf("📁 Snapshots: %s\n", a.bufferService.Directory())
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	var runErr error
	select {
	case sig := <-signals:
		a.logger.Info("Received %v, shutting down", sig)
	case err := <-serverErr:
		runErr = fmt.Errorf("viewer server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warning("Viewer shutdown: %v", err)
	}

	a.shutdown()
	return runErr
}

// shutdown stops the camera and poller, then cancels the process context
// so in-flight requests end and the archive flushes before the database
// closes.
func (a *App) shutdown() {
	a.camera.Stop()
	a.cancel()
	a.poller.Stop()
	a.camera.Close()
	a.wg.Wait()

	a.preview.Clear()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close snapshot database: %v", err)
		}
	}
	a.logger.Info("🛑 Helmet Watch stopped")
	a.logger.Close()
}
