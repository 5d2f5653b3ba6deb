package rules

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"protexai/pkg/annotations"
)

// Classes the occupancy tracker cares about.
const (
	ClassCar    = "car"
	ClassPerson = "person"
	ClassTruck  = "truck"
)

// DefaultMaxAllowedGap is the minimum frame distance between two positive
// evaluations before a new notification is sent. Keeps a single ongoing
// event from producing a message per frame.
const DefaultMaxAllowedGap = 1

// Event describes a rule violation observed in a frame.
type Event struct {
	ID         string
	RuleName   string
	CameraName string
	FrameNum   int
	Timestamp  int64 // nanoseconds since stream origin
	ROIIndex   int
}

// Notifier delivers rule events to an external channel.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Engine tracks which object classes occupy each region of interest within
// the current frame, and decides when a positive evaluation warrants a new
// notification.
type Engine struct {
	rois      []orb.Polygon
	occupancy []map[string]bool
	notifier  Notifier

	maxAllowedGap     int
	lastPositiveFrame int
}

// NewEngine creates an Engine for the given regions of interest. Each region
// is a ring of vertices in frame pixel coordinates.
func NewEngine(rois [][]orb.Point, notifier Notifier) *Engine {
	e := &Engine{
		notifier:      notifier,
		maxAllowedGap: DefaultMaxAllowedGap,
	}
	for _, vertices := range rois {
		e.rois = append(e.rois, closedPolygon(vertices))
		e.occupancy = append(e.occupancy, map[string]bool{
			ClassCar:    false,
			ClassPerson: false,
			ClassTruck:  false,
		})
	}
	return e
}

// ROIs returns the engine's regions of interest.
func (e *Engine) ROIs() []orb.Polygon {
	return e.rois
}

// ResetFrame clears per-ROI occupancy so one frame's objects do not leak
// into the next.
func (e *Engine) ResetFrame() {
	for i := range e.occupancy {
		e.occupancy[i] = map[string]bool{
			ClassCar:    false,
			ClassPerson: false,
			ClassTruck:  false,
		}
	}
}

// markOccupied records that an object class is present in a region.
func (e *Engine) markOccupied(roiIndex int, class string) {
	e.occupancy[roiIndex][class] = true
}

// shouldNotify reports whether a positive evaluation at frameNum is far
// enough from the previous one to warrant a notification. The last positive
// frame advances on every call.
func (e *Engine) shouldNotify(frameNum int) bool {
	res := frameNum-e.lastPositiveFrame > e.maxAllowedGap
	e.lastPositiveFrame = frameNum
	return res
}

// emit sends a rule event to the notifier. Delivery failures are logged,
// never fatal to the evaluation loop.
func (e *Engine) emit(ctx context.Context, ruleName, camName string, frame annotations.Frame, roiIndex int) {
	event := Event{
		ID:         uuid.New().String(),
		RuleName:   ruleName,
		CameraName: camName,
		FrameNum:   frame.FrameNum,
		Timestamp:  frame.Timestamp,
		ROIIndex:   roiIndex,
	}

	if err := e.notifier.Notify(ctx, event); err != nil {
		slog.Warn("Failed to deliver rule event", "rule", ruleName, "frame", frame.FrameNum, "error", err)
		return
	}
	slog.Info("Rule event delivered", "rule", ruleName, "camera", camName, "frame", frame.FrameNum, "roi", roiIndex)
}

// BBoxPolygon converts a fractional bounding box into an absolute-coordinate
// polygon (top-left, top-right, bottom-right, bottom-left).
func BBoxPolygon(b annotations.BBox, frameWidth, frameHeight int) orb.Polygon {
	w := float64(frameWidth)
	h := float64(frameHeight)

	return closedPolygon([]orb.Point{
		{b.Left * w, b.Top * h},
		{(b.Left + b.Width) * w, b.Top * h},
		{(b.Left + b.Width) * w, (b.Top + b.Height) * h},
		{b.Left * w, (b.Top + b.Height) * h},
	})
}

// Centroid returns the planar centroid of a polygon.
func Centroid(p orb.Polygon) orb.Point {
	centroid, _ := planar.CentroidArea(p)
	return centroid
}

// closedPolygon builds a single-ring polygon, closing the ring if the caller
// did not.
func closedPolygon(vertices []orb.Point) orb.Polygon {
	ring := make(orb.Ring, 0, len(vertices)+1)
	ring = append(ring, vertices...)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}
