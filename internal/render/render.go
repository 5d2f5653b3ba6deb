package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"protexai/internal/rules"
	"protexai/pkg/annotations"
)

// rgb is an 8-bit color triple.
type rgb struct {
	r, g, b int
}

var (
	colorPerson = rgb{82, 168, 50}
	colorCar    = rgb{250, 127, 144}
	colorTruck  = rgb{199, 214, 84}
	colorAlert  = rgb{242, 10, 2}
	colorOther  = rgb{255, 255, 255}
)

// classColor maps a detection class to its display color. Unknown classes
// fall back to the neutral color.
func classColor(class string) rgb {
	switch class {
	case rules.ClassPerson:
		return colorPerson
	case rules.ClassCar:
		return colorCar
	case rules.ClassTruck:
		return colorTruck
	default:
		return colorOther
	}
}

// Renderer draws annotated frames while feeding every detection through the
// rule engine, and writes the result as a PNG sequence.
type Renderer struct {
	rule   *rules.CarAndPerson
	outDir string
	width  int
	height int
}

// New creates a Renderer emitting width x height frames into outDir.
func New(rule *rules.CarAndPerson, outDir string, width, height int) *Renderer {
	return &Renderer{
		rule:   rule,
		outDir: outDir,
		width:  width,
		height: height,
	}
}

// Render runs the event loop over all frames: evaluates the rule per
// detection, draws the frame, and saves it as out/frame_NNNNN.png.
func (r *Renderer) Render(ctx context.Context, ann *annotations.Annotations) error {
	if err := os.MkdirAll(r.outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Rendering annotated frames", "camera", ann.CamName, "frames", len(ann.Frames), "outDir", r.outDir)

	for _, frame := range ann.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.renderFrame(ctx, ann.CamName, frame); err != nil {
			return fmt.Errorf("failed to render frame %d: %w", frame.FrameNum, err)
		}

		// Occupancy must not leak into the next frame
		r.rule.ResetFrame()
	}

	slog.Info("Rendering completed", "frames", len(ann.Frames), "violations", r.rule.Violations())
	return nil
}

func (r *Renderer) renderFrame(ctx context.Context, camName string, frame annotations.Frame) error {
	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB255(0, 0, 0)
	dc.Clear()

	alerts := make(map[int]bool)

	for _, det := range frame.Detections {
		object := rules.BBoxPolygon(det.BBox, frame.FrameWidth, frame.FrameHeight)

		// Execute returns the violated ROI index, or -1
		if index := r.rule.Execute(ctx, object, det.Class, camName, frame); index >= 0 {
			alerts[index] = true
		}

		color := classColor(det.Class)
		strokePolygon(dc, object, color)
		drawDot(dc, rules.Centroid(object), color)
	}

	indicator := false
	for index, roi := range r.rule.ROIs() {
		color := colorOther
		if alerts[index] {
			indicator = true
			color = colorAlert
		}
		strokePolygon(dc, roi, color)
	}

	// Full-frame border, alert-colored when any ROI fired
	borderColor := colorOther
	if indicator {
		borderColor = colorAlert
	}
	w := float64(r.width)
	h := float64(r.height)
	strokePolygon(dc, orb.Polygon{{{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0}}}, borderColor)

	dc.SetRGB255(255, 255, 255)
	dc.DrawString(fmt.Sprintf("frame: %d", frame.FrameNum), 50, 50)

	return dc.SavePNG(filepath.Join(r.outDir, fmt.Sprintf("frame_%05d.png", frame.FrameNum)))
}

// strokePolygon outlines the polygon's exterior ring.
func strokePolygon(dc *gg.Context, poly orb.Polygon, color rgb) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return
	}

	ring := poly[0]
	dc.NewSubPath()
	dc.MoveTo(ring[0][0], ring[0][1])
	for _, pt := range ring[1:] {
		dc.LineTo(pt[0], pt[1])
	}
	dc.ClosePath()

	dc.SetRGB255(color.r, color.g, color.b)
	dc.SetLineWidth(2)
	dc.Stroke()
}

// drawDot marks a point, used for detection centroids.
func drawDot(dc *gg.Context, pt orb.Point, color rgb) {
	dc.SetRGB255(color.r, color.g, color.b)
	dc.DrawCircle(pt[0], pt[1], 3)
	dc.Fill()
}
