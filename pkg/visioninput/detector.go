// Package visioninput turns camera events into command identifiers: the
// "computer_vision" input adapter. A Detector reports named regions with
// activity; the adapter maps region names to configured commands.
package visioninput

import "errors"

// ErrNoFrame is returned by detectors when the camera yields no frame.
var ErrNoFrame = errors.New("visioninput: no frame available")

// Frame regions reported by the bundled motion detector.
const (
	RegionLeft   = "left"
	RegionCenter = "center"
	RegionRight  = "right"
)

// Detection is one observed event in the camera field.
type Detection struct {
	// Region names where in the frame the activity happened.
	Region string

	// Confidence is the fraction of the region's pixels that changed
	// (0-1 for the motion backend).
	Confidence float64
}

// Detector is the interface for computer-vision backends.
type Detector interface {
	// Detect grabs the next frame and returns activity per region.
	// An empty slice means a quiet frame, not an error.
	Detect() ([]Detection, error)

	// Close releases camera resources.
	Close() error
}
