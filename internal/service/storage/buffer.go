package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"helmetwatch/internal/config"
	"helmetwatch/internal/dto"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/model"
	"helmetwatch/internal/repository"
)

const timestampLayout = "2006-01-02_15-04_05.000"

// BufferService buffers annotated previews in memory and periodically
// flushes them to disk, indexing each file in the snapshot repository.
// At most limit previews per camera are kept per flush window.
type BufferService struct {
	snapshotsDir  string
	limit         int
	flushInterval time.Duration
	snapshots     []dto.BufferedSnapshot
	bufferCount   map[string]int
	mu            sync.Mutex
	logger        *logger.Logger
	metrics       *metrics.Metrics
	snapshotRepo  repository.SnapshotRepository
}

// NewBufferService creates a new BufferService from the snapshot settings.
func NewBufferService(config *config.Config, logger *logger.Logger, metrics *metrics.Metrics, snapshotRepo repository.SnapshotRepository) *BufferService {
	limit := config.SnapshotLimit
	if limit < 1 {
		limit = 1
	}
	interval := time.Duration(config.SnapshotFlushInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &BufferService{
		snapshotsDir:  config.SnapshotDirectory,
		limit:         limit,
		flushInterval: interval,
		snapshots:     make([]dto.BufferedSnapshot, 0),
		bufferCount:   make(map[string]int),
		logger:        logger,
		metrics:       metrics,
		snapshotRepo:  snapshotRepo,
	}
}

// Run flushes the buffer on every interval until ctx is done, then
// flushes whatever is left.
func (s *BufferService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.FlushSnapshots()
		case <-ctx.Done():
			s.FlushSnapshots()
			return
		}
	}
}

// AddSnapshot buffers an annotated preview for camera if the window's
// limit has not been reached.
func (s *BufferService) AddSnapshot(data []byte, camera string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bufferCount[camera] >= s.limit {
		return
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.snapshots = append(s.snapshots, dto.BufferedSnapshot{
		Timestamp: time.Now().Format(timestampLayout),
		Camera:    camera,
		Data:      buf,
	})
	s.bufferCount[camera]++
	s.logger.Debug("Snapshot buffer for camera %s: %d/%d", camera, s.bufferCount[camera], s.limit)
}

// Pending returns the number of buffered snapshots.
func (s *BufferService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// FlushSnapshots writes buffered snapshots to disk and resets the buffer
// and per-camera counters.
func (s *BufferService) FlushSnapshots() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snapshots) == 0 {
		return
	}

	if err := os.MkdirAll(s.snapshotsDir, 0755); err != nil {
		s.logger.Error("Error creating directory: %v", err)
		return
	}

	savedCount := 0
	for i, snapshot := range s.snapshots {
		filename := Filename(snapshot.Timestamp, snapshot.Camera, i)
		fullpath := filepath.Join(s.snapshotsDir, filename)

		if err := os.WriteFile(fullpath, snapshot.Data, 0644); err != nil {
			s.logger.Error("Error saving snapshot %s: %v", filename, err)
			continue
		}

		if s.snapshotRepo != nil {
			ts, err := time.ParseInLocation(timestampLayout, snapshot.Timestamp, time.Local)
			if err != nil {
				ts = time.Now()
			}

			_, err = s.snapshotRepo.Insert(&model.Snapshot{
				Filename:  filename,
				Camera:    snapshot.Camera,
				Timestamp: ts,
				FilePath:  fullpath,
				FileSize:  int64(len(snapshot.Data)),
			})
			if err != nil {
				s.logger.Error("Error saving snapshot to database %s: %v", filename, err)
				continue
			}
		}

		savedCount++
	}

	s.metrics.SnapshotsArchived.Add(float64(savedCount))
	s.logger.Info("Flushed %d snapshots to disk", savedCount)
	s.snapshots = s.snapshots[:0]
	s.bufferCount = make(map[string]int)
}

// Directory returns where snapshots are written.
func (s *BufferService) Directory() string {
	return s.snapshotsDir
}

// Filename names a flushed snapshot: timestamp, camera and its position
// in the flush.
func Filename(timestamp, camera string, seq int) string {
	return fmt.Sprintf("%s_%s_%d.jpg", timestamp, camera, seq)
}

// ParseFilename recovers the timestamp and camera from a name built by
// Filename. Camera names may contain underscores.
func ParseFilename(name string) (time.Time, string, error) {
	base := strings.TrimSuffix(name, ".jpg")
	if base == name || len(base) < len(timestampLayout)+2 {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename: %s", name)
	}

	ts, err := time.ParseInLocation(timestampLayout, base[:len(timestampLayout)], time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid snapshot timestamp in %s: %w", name, err)
	}

	rest := base[len(timestampLayout):]
	if !strings.HasPrefix(rest, "_") {
		return time.Time{}, "", fmt.Errorf("invalid snapshot filename: %s", name)
	}
	rest = rest[1:]

	sep := strings.LastIndex(rest, "_")
	if sep <= 0 {
		return time.Time{}, "", fmt.Errorf("missing camera in snapshot filename: %s", name)
	}
	return ts, rest[:sep], nil
}
