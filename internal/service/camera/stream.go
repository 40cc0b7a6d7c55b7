package camera

import (
	"context"
	"errors"

	"helmetwatch/internal/view"
)

// FacingEnvironment selects the rear camera.
const FacingEnvironment = "environment"

// FacingUser selects the front camera.
const FacingUser = "user"

// ErrMediaAcquisition is returned by Start when no stream could be obtained.
var ErrMediaAcquisition = errors.New("camera: media acquisition failed")

// Constraints describe the requested stream.
type Constraints struct {
	FacingMode string
	Audio      bool
}

// Stream is an opened camera stream. Closing it releases every track.
type Stream interface {
	view.Source
	Play(ctx context.Context) error
	Close() error
}

// Opener acquires camera streams.
type Opener interface {
	Open(ctx context.Context, constraints Constraints) (Stream, error)
}
