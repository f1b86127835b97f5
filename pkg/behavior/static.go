package behavior

// StaticAudio is an AudioService returning a fixed level.
// A nil *StaticAudio reports no signal.
type StaticAudio struct {
	Value float64
}

// Available reports true for a non-nil StaticAudio.
func (a *StaticAudio) Available() bool {
	return a != nil
}

// Level returns the fixed level.
func (a *StaticAudio) Level() float64 {
	if a == nil {
		return 0
	}
	return a.Value
}

// StaticFace is a FaceService returning a fixed keypoint for every index.
// A nil *StaticFace reports no face.
type StaticFace struct {
	Point Point
}

// Keypoint returns the fixed point.
func (f *StaticFace) Keypoint(int) (Point, bool) {
	if f == nil {
		return Point{}, false
	}
	return f.Point, true
}
