// Package gocvcam opens local camera devices through OpenCV.
package gocvcam

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"helmetwatch/internal/logger"
	"helmetwatch/internal/service/camera"
)

var (
	ErrNoFrame = errors.New("gocvcam: no frame captured yet")
	ErrClosed  = errors.New("gocvcam: stream closed")
)

// readRetry is how long the reader waits after an empty read.
const readRetry = 20 * time.Millisecond

// Opener maps facing modes to OpenCV device IDs or URLs.
type Opener struct {
	devices map[string]string
	logger  *logger.Logger
}

// NewOpener creates an opener. user may be empty, in which case every
// request is served by the environment device.
func NewOpener(environment, user string, logger *logger.Logger) *Opener {
	devices := map[string]string{camera.FacingEnvironment: environment}
	if user != "" {
		devices[camera.FacingUser] = user
	}
	return &Opener{devices: devices, logger: logger}
}

// Open starts capturing from the device selected by constraints. Audio is
// never captured.
func (o *Opener) Open(ctx context.Context, constraints camera.Constraints) (camera.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	device, ok := o.devices[constraints.FacingMode]
	if !ok {
		device = o.devices[camera.FacingEnvironment]
	}

	capture, err := gocv.OpenVideoCapture(deviceID(device))
	if err != nil {
		return nil, fmt.Errorf("failed to open video capture %q: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("video capture %q is not opened", device)
	}

	o.logger.Info("Opened camera device %s (%s)", device, constraints.FacingMode)
	return &Stream{capture: capture, logger: o.logger, done: make(chan struct{})}, nil
}

// deviceID returns numeric devices as ints so OpenCV treats them as
// indexes rather than file names.
func deviceID(device string) interface{} {
	if id, err := strconv.Atoi(device); err == nil {
		return id
	}
	return device
}

// Stream reads frames on a background goroutine and keeps the latest one.
type Stream struct {
	capture *gocv.VideoCapture
	logger  *logger.Logger

	mu     sync.RWMutex
	frame  *image.RGBA
	closed bool

	playOnce  sync.Once
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Play starts the reader. Further calls do nothing.
func (s *Stream) Play(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	s.playOnce.Do(func() {
		s.wg.Add(1)
		go s.read()
	})
	return nil
}

func (s *Stream) read() {
	defer s.wg.Done()

	mat := gocv.NewMat()
	defer mat.Close()

	for {
		select {
		case <-s.done:
			return
		default:
		}

		if ok := s.capture.Read(&mat); !ok || mat.Empty() {
			time.Sleep(readRetry)
			continue
		}

		img, err := mat.ToImage()
		if err != nil {
			s.logger.Debug("Failed to convert camera frame: %v", err)
			continue
		}
		s.store(img)
	}
}

func (s *Stream) store(img image.Image) {
	b := img.Bounds()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame == nil || s.frame.Bounds().Dx() != b.Dx() || s.frame.Bounds().Dy() != b.Dy() {
		s.frame = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(s.frame, s.frame.Bounds(), img, b.Min, draw.Src)
}

// NaturalSize is 0x0 until the first frame has been read.
func (s *Stream) NaturalSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.frame == nil || s.closed {
		return 0, 0
	}
	return s.frame.Bounds().Dx(), s.frame.Bounds().Dy()
}

// DrawInto copies the latest frame into dst.
func (s *Stream) DrawInto(dst *image.RGBA) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if s.frame == nil {
		return ErrNoFrame
	}
	draw.Draw(dst, dst.Bounds(), s.frame, image.Point{}, draw.Src)
	return nil
}

// Close stops the reader and releases the device.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.frame = nil
		s.mu.Unlock()

		close(s.done)
		s.wg.Wait()
		err = s.capture.Close()
	})
	return err
}
