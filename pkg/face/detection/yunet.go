package detection

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// YuNet output columns: bbox (4), five landmark x/y pairs (10), score (1).
const (
	yunetLandmarkCol = 4
	yunetScoreCol    = 14
)

// YuNetDetector uses OpenCV's FaceDetectorYN for face detection
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   Config
	logger   *slog.Logger
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a new YuNet face detector using GoCV's built-in FaceDetectorYN
func NewYuNet(cfg Config, logger *slog.Logger) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Input size is reset per image in Detect.
	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Detect finds faces and their landmarks in the JPEG image
func (d *YuNetDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	detections := make([]Detection, 0, faces.Rows())
	for r := 0; r < faces.Rows(); r++ {
		det := Detection{
			X:          float64(faces.GetFloatAt(r, 0)) / imgW,
			Y:          float64(faces.GetFloatAt(r, 1)) / imgH,
			W:          float64(faces.GetFloatAt(r, 2)) / imgW,
			H:          float64(faces.GetFloatAt(r, 3)) / imgH,
			Confidence: float64(faces.GetFloatAt(r, yunetScoreCol)),
		}
		for i := 0; i < NumLandmarks; i++ {
			col := yunetLandmarkCol + 2*i
			det.Landmarks[i] = Point{
				X: float64(faces.GetFloatAt(r, col)) / imgW,
				Y: float64(faces.GetFloatAt(r, col+1)) / imgH,
			}
		}
		detections = append(detections, det)
	}

	if len(detections) > 0 {
		d.logger.Debug("yunet found faces", "count", len(detections))
	}

	return detections, nil
}

// Close releases the detector resources
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}
