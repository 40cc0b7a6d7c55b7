// Package capture runs the sample-and-submit loop: snapshot the live
// stream, upload it for detection, show the annotated result.
package capture

import (
	"context"
	"errors"
	"image"
	"time"

	"helmetwatch/internal/client"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/model"
	"helmetwatch/internal/schedule"
)

// Delay is the pause after each completed iteration.
const Delay = 1500 * time.Millisecond

// Surface is the video element frames are taken from.
type Surface interface {
	NaturalSize() (width, height int)
	DrawInto(dst *image.RGBA) error
}

// Encoder compresses a raster into an uploadable frame.
type Encoder interface {
	Encode(img image.Image) (model.Frame, error)
}

// Detector submits a frame and returns the annotated image.
type Detector interface {
	Detect(ctx context.Context, frame model.Frame) (client.Annotated, error)
}

// Preview replaces the displayed annotated image.
type Preview interface {
	Replace(data []byte, mimeType string) error
}

// Archive receives annotated images worth keeping.
type Archive interface {
	AddSnapshot(data []byte, camera string)
}

// Loop is the capture-submit loop. Each Run keeps its own raster that
// tracks the stream's native resolution.
type Loop struct {
	surface  Surface
	encoder  Encoder
	detector Detector
	preview  Preview
	archive  Archive
	logger   *logger.Logger
	metrics  *metrics.Metrics

	camera string
	delay  time.Duration
}

// NewLoop creates a loop using Delay between iterations.
func NewLoop(surface Surface, encoder Encoder, detector Detector, preview Preview, logger *logger.Logger, metrics *metrics.Metrics) *Loop {
	return &Loop{
		surface:  surface,
		encoder:  encoder,
		detector: detector,
		preview:  preview,
		logger:   logger,
		metrics:  metrics,
		camera:   "live",
		delay:    Delay,
	}
}

// WithArchive offers every installed preview to archive, tagged with camera.
func (l *Loop) WithArchive(archive Archive, camera string) *Loop {
	l.archive = archive
	if camera != "" {
		l.camera = camera
	}
	return l
}

// Run iterates until token is cancelled. Cancellation is observed between
// iterations only: an upload in flight when Stop is requested completes
// and its preview is still installed.
func (l *Loop) Run(ctx context.Context, token *schedule.Token) {
	l.logger.Info("🎬 Capture loop started")
	var raster *image.RGBA
	schedule.FixedDelay(ctx, token, l.delay, func(ctx context.Context) {
		raster = l.iterate(ctx, raster)
	})
	l.logger.Info("🛑 Capture loop stopped")
}

// iterate performs one capture cycle and returns the raster to reuse.
// Failures are absorbed; the next cycle is the retry.
func (l *Loop) iterate(ctx context.Context, raster *image.RGBA) *image.RGBA {
	width, height := l.surface.NaturalSize()
	if width == 0 {
		l.metrics.FramesSkipped.Inc()
		l.logger.Debug("Stream not producing frames yet, skipping capture")
		return raster
	}

	if raster == nil || raster.Bounds().Dx() != width || raster.Bounds().Dy() != height {
		raster = image.NewRGBA(image.Rect(0, 0, width, height))
	}

	if err := l.surface.DrawInto(raster); err != nil {
		l.metrics.CaptureErrors.Inc()
		l.logger.Debug("Failed to snapshot stream: %v", err)
		return raster
	}

	frame, err := l.encoder.Encode(raster)
	if err != nil {
		l.metrics.CaptureErrors.Inc()
		l.logger.Warning("Failed to encode frame: %v", err)
		return raster
	}

	l.metrics.FramesSubmitted.Inc()
	start := time.Now()
	annotated, err := l.detector.Detect(ctx, frame)
	l.metrics.DetectLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		l.metrics.DetectFailures.Inc()
		if !errors.Is(err, client.ErrTransientRequest) {
			l.logger.Warning("Detection request failed: %v", err)
		} else {
			l.logger.Debug("Detection skipped: %v", err)
		}
		return raster
	}

	if err := l.preview.Replace(annotated.Data, annotated.MIMEType); err != nil {
		l.logger.Warning("Failed to install preview: %v", err)
		return raster
	}
	l.metrics.PreviewsInstalled.Inc()

	if l.archive != nil {
		l.archive.AddSnapshot(annotated.Data, l.camera)
	}

	return raster
}
