package annotations

// Annotations is the root object of an exported detection file. It holds the
// camera identity and the per-frame detections produced by the upstream
// detector.
type Annotations struct {
	CamName string  `json:"cam_name" mapstructure:"cam_name" validate:"required"`
	Frames  []Frame `json:"frames" mapstructure:"frames" validate:"required,dive"`
}

// Frame carries one video frame's worth of detections.
type Frame struct {
	FrameNum    int         `json:"frame_num" mapstructure:"frame_num" validate:"gte=0"`
	Timestamp   int64       `json:"timestamp" mapstructure:"timestamp" validate:"gte=0"` // nanoseconds since stream origin
	FrameWidth  int         `json:"frame_width" mapstructure:"frame_width" validate:"required,gt=0"`
	FrameHeight int         `json:"frame_height" mapstructure:"frame_height" validate:"required,gt=0"`
	Detections  []Detection `json:"detections" mapstructure:"detections" validate:"dive"`
}

// Detection is a single detected object with a fractional bounding box.
type Detection struct {
	Class string `json:"class" mapstructure:"class" validate:"required"`
	BBox  BBox   `json:"bbox" mapstructure:"bbox" validate:"required"`
}

// BBox is a bounding box in fractions of the frame dimensions.
type BBox struct {
	Left   float64 `json:"left" mapstructure:"left" validate:"gte=0,lte=1"`
	Top    float64 `json:"top" mapstructure:"top" validate:"gte=0,lte=1"`
	Width  float64 `json:"width" mapstructure:"width" validate:"gt=0,lte=1"`
	Height float64 `json:"height" mapstructure:"height" validate:"gt=0,lte=1"`
}
