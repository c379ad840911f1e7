package visioninput

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Motion detection parameters.
const (
	// motionDiffThreshold is the per-pixel intensity delta treated as
	// change between consecutive frames.
	motionDiffThreshold = 25

	// blurKernel smooths sensor noise before differencing.
	blurKernel = 21
)

// MotionDetector detects movement by frame differencing and reports it
// per horizontal third of the frame (left, center, right).
type MotionDetector struct {
	capture *gocv.VideoCapture
	prev    gocv.Mat
}

var _ Detector = (*MotionDetector)(nil)

// NewMotionDetector opens the given camera device (e.g. 0 for the default
// camera).
func NewMotionDetector(device int) (*MotionDetector, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("visioninput: open camera %d: %w", device, err)
	}
	return &MotionDetector{
		capture: capture,
		prev:    gocv.NewMat(),
	}, nil
}

// Detect reads one frame and compares it with the previous one. The first
// frame only primes the reference and reports nothing.
func (m *MotionDetector) Detect() ([]Detection, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	if ok := m.capture.Read(&frame); !ok || frame.Empty() {
		return nil, ErrNoFrame
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	gocv.GaussianBlur(gray, &gray, image.Pt(blurKernel, blurKernel), 0, 0, gocv.BorderDefault)

	if m.prev.Empty() {
		gray.CopyTo(&m.prev)
		return nil, nil
	}

	delta := gocv.NewMat()
	defer delta.Close()
	gocv.AbsDiff(m.prev, gray, &delta)
	gocv.Threshold(delta, &delta, motionDiffThreshold, 255, gocv.ThresholdBinary)
	gray.CopyTo(&m.prev)

	return splitRegions(delta), nil
}

// splitRegions measures changed-pixel density per horizontal third.
func splitRegions(delta gocv.Mat) []Detection {
	width, height := delta.Cols(), delta.Rows()
	if width < 3 || height == 0 {
		return nil
	}

	regions := []string{RegionLeft, RegionCenter, RegionRight}
	third := width / 3

	var out []Detection
	for i, name := range regions {
		x0 := i * third
		x1 := x0 + third
		if i == len(regions)-1 {
			x1 = width
		}

		roi := delta.Region(image.Rect(x0, 0, x1, height))
		changed := gocv.CountNonZero(roi)
		area := (x1 - x0) * height
		roi.Close()

		if changed == 0 {
			continue
		}
		out = append(out, Detection{
			Region:     name,
			Confidence: float64(changed) / float64(area),
		})
	}
	return out
}

// Close releases the camera and the reference frame.
func (m *MotionDetector) Close() error {
	m.prev.Close()
	if m.capture == nil {
		return nil
	}
	return m.capture.Close()
}
