package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validAnnotations = `{
  "cam_name": "loading-dock-east",
  "frames": [
    {
      "frame_num": 0,
      "timestamp": 200000000,
      "frame_width": 1920,
      "frame_height": 1080,
      "detections": [
        {
          "class": "car",
          "bbox": {"left": 0.44, "top": 0.08, "width": 0.11, "height": 0.15}
        },
        {
          "class": "person",
          "bbox": {"left": 0.46, "top": 0.1, "width": 0.03, "height": 0.08}
        }
      ]
    }
  ]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test file: %s", err)
	}
	return path
}

func TestParse_ValidAnnotations(t *testing.T) {
	path := writeTempFile(t, "annotations.json", validAnnotations)

	ann, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() failed: %s", err)
	}

	if ann.CamName != "loading-dock-east" {
		t.Errorf("Expected cam_name 'loading-dock-east', got %q", ann.CamName)
	}
	if len(ann.Frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(ann.Frames))
	}

	frame := ann.Frames[0]
	if frame.FrameWidth != 1920 || frame.FrameHeight != 1080 {
		t.Errorf("Unexpected frame dimensions: %dx%d", frame.FrameWidth, frame.FrameHeight)
	}
	if len(frame.Detections) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(frame.Detections))
	}
	if frame.Detections[0].Class != "car" {
		t.Errorf("Expected first detection class 'car', got %q", frame.Detections[0].Class)
	}
	if frame.Detections[1].BBox.Left != 0.46 {
		t.Errorf("Expected bbox left 0.46, got %f", frame.Detections[1].BBox.Left)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "annotations file not found") {
		t.Errorf("Unexpected error message: %s", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	path := writeTempFile(t, "annotations.json", `{"cam_name": "cam-1", "frames": [`)

	_, err := Parse(path)
	if err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "Missing cam_name",
			content:  `{"frames": [{"frame_num": 0, "timestamp": 0, "frame_width": 1920, "frame_height": 1080, "detections": []}]}`,
			errorMsg: "'CamName' is required",
		},
		{
			name:     "Missing frames",
			content:  `{"cam_name": "cam-1"}`,
			errorMsg: "'Frames' is required",
		},
		{
			name: "Frame without dimensions",
			content: `{"cam_name": "cam-1", "frames": [
				{"frame_num": 0, "timestamp": 0, "detections": []}
			]}`,
			errorMsg: "required",
		},
		{
			name: "BBox fraction out of range",
			content: `{"cam_name": "cam-1", "frames": [
				{"frame_num": 0, "timestamp": 0, "frame_width": 1920, "frame_height": 1080, "detections": [
					{"class": "car", "bbox": {"left": 1.5, "top": 0.1, "width": 0.2, "height": 0.2}}
				]}
			]}`,
			errorMsg: "at most",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "annotations.json", tt.content)

			_, err := Parse(path)
			if err == nil {
				t.Fatal("Expected validation error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got: %s", tt.errorMsg, err)
			}
		})
	}
}
