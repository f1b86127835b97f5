package face

import (
	"bytes"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// FrameSource captures frames as JPEG.
type FrameSource interface {
	CaptureJPEG() ([]byte, error)
}

// Camera reads frames from a local capture device.
type Camera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	frame   gocv.Mat
	quality int
	closed  bool
}

// OpenCamera opens the capture device named in cfg.
func OpenCamera(cfg Config) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.Device, err)
	}
	return &Camera{
		capture: vc,
		frame:   gocv.NewMat(),
		quality: cfg.Quality,
	}, nil
}

// CaptureJPEG grabs the next frame and encodes it.
func (c *Camera) CaptureJPEG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCameraClosed
	}
	if ok := c.capture.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, fmt.Errorf("camera read failed")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, c.frame, []int{gocv.IMWriteJpegQuality, c.quality})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// The buffer is C memory; copy before release.
	return bytes.Clone(buf.GetBytes()), nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.frame.Close()
	return c.capture.Close()
}
