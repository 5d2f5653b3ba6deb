package parser

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseROIs_Valid(t *testing.T) {
	path := writeTempFile(t, "rois.json", `{
		"rois": [
			[[885, 85], [834, 246], [1228, 260], [1139, 77]],
			[[181, 288], [165, 522], [612, 510], [544, 246]]
		]
	}`)

	rois, err := ParseROIs(path)
	if err != nil {
		t.Fatalf("ParseROIs() failed: %s", err)
	}

	if len(rois) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(rois))
	}
	if len(rois[0]) != 4 {
		t.Errorf("Expected 4 vertices in region 0, got %d", len(rois[0]))
	}
	if rois[0][0][0] != 885 || rois[0][0][1] != 85 {
		t.Errorf("Unexpected first vertex: %v", rois[0][0])
	}
}

func TestParseROIs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "Empty regions",
			content:  `{"rois": []}`,
			errorMsg: "defines no regions",
		},
		{
			name:     "Too few vertices",
			content:  `{"rois": [[[0, 0], [10, 0]]]}`,
			errorMsg: "need at least 3",
		},
		{
			name:     "Vertex is not a pair",
			content:  `{"rois": [[[0, 0, 5], [10, 0], [10, 10]]]}`,
			errorMsg: "must be an [x, y] pair",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "rois.json", tt.content)

			_, err := ParseROIs(path)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got: %s", tt.errorMsg, err)
			}
		})
	}
}

func TestParseROIs_FileNotFound(t *testing.T) {
	_, err := ParseROIs(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}
