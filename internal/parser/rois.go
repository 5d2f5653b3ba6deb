package parser

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/spf13/viper"
)

// roisFile is the on-disk shape of a region-of-interest override file:
// {"rois": [[[x, y], ...], ...]} with vertices in frame pixel coordinates.
type roisFile struct {
	ROIs [][][]float64 `mapstructure:"rois"`
}

// ParseROIs reads a JSON file of region-of-interest polygons.
func ParseROIs(filePath string) ([][]orb.Point, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("ROI file not found: %s", filePath)
	}

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read ROI file: %w", err)
	}

	var raw roisFile
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse ROI file - malformed JSON: %w", err)
	}

	if len(raw.ROIs) == 0 {
		return nil, fmt.Errorf("ROI file defines no regions")
	}

	rois := make([][]orb.Point, 0, len(raw.ROIs))
	for i, region := range raw.ROIs {
		if len(region) < 3 {
			return nil, fmt.Errorf("region %d has %d vertices, need at least 3", i, len(region))
		}
		points := make([]orb.Point, 0, len(region))
		for j, vertex := range region {
			if len(vertex) != 2 {
				return nil, fmt.Errorf("region %d vertex %d must be an [x, y] pair", i, j)
			}
			points = append(points, orb.Point{vertex[0], vertex[1]})
		}
		rois = append(rois, points)
	}

	return rois, nil
}
