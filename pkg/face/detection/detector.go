// Package detection provides face detection with facial landmarks.
package detection

// Landmark indexes in YuNet output order.
const (
	LandmarkRightEye = iota
	LandmarkLeftEye
	LandmarkNose
	LandmarkRightMouth
	LandmarkLeftMouth

	NumLandmarks
)

// Point is a normalized image coordinate (0-1).
type Point struct {
	X, Y float64
}

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left corner (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)

	Landmarks [NumLandmarks]Point // Normalized facial keypoints
}

// Center returns the center point of the detection
func (d Detection) Center() (x, y float64) {
	return d.X + d.W/2, d.Y + d.H/2
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// Landmark returns keypoint i, or false if i is out of range.
func (d Detection) Landmark(i int) (Point, bool) {
	if i < 0 || i >= NumLandmarks {
		return Point{}, false
	}
	return d.Landmarks[i], true
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in a JPEG image
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  `mapstructure:"model_path" json:"model_path"`
	ConfidenceThresh float64 `mapstructure:"confidence" json:"confidence"`
	InputWidth       int     `mapstructure:"input_width" json:"input_width"`
	InputHeight      int     `mapstructure:"input_height" json:"input_height"`
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectBest picks the face to follow when several are found.
// Priority: confidence * 0.7 + relative area * 0.3
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}
	if len(dets) == 1 {
		return &dets[0]
	}

	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection
	for i := range dets {
		score := dets[i].Confidence * 0.7
		if maxArea > 0 {
			score += (dets[i].Area() / maxArea) * 0.3
		}
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}
	return best
}
