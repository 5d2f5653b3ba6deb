package rules

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"protexai/pkg/annotations"
)

// CarAndPersonRuleName identifies the rule in notifications.
const CarAndPersonRuleName = "Car and Person"

// CarAndPerson enforces that a car and a person can never occupy the same
// region of interest at the same time.
type CarAndPerson struct {
	*Engine

	count int
}

// NewCarAndPerson creates the rule over the given regions of interest.
func NewCarAndPerson(rois [][]orb.Point, notifier Notifier) *CarAndPerson {
	return &CarAndPerson{Engine: NewEngine(rois, notifier)}
}

// Name returns the rule's display name.
func (r *CarAndPerson) Name() string {
	return CarAndPersonRuleName
}

// Violations returns how many times the rule has evaluated positive.
func (r *CarAndPerson) Violations() int {
	return r.count
}

// Execute evaluates one detection against the rule. An object belongs to the
// first region of interest containing its centroid. Returns the index of the
// region where the rule fired, or -1.
func (r *CarAndPerson) Execute(ctx context.Context, object orb.Polygon, class, camName string, frame annotations.Frame) int {
	centroid := Centroid(object)

	for index, roi := range r.rois {
		if !planar.PolygonContains(roi, centroid) {
			continue
		}

		r.markOccupied(index, class)

		if r.occupancy[index][ClassCar] && r.occupancy[index][ClassPerson] {
			r.count++
			if r.shouldNotify(frame.FrameNum) {
				r.emit(ctx, r.Name(), camName, frame, index)
			}
			return index
		}
		break
	}

	return -1
}
