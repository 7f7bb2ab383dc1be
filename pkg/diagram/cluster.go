package diagram

import (
	"math"
	"slices"
)

// Columns is the ascending list of logical column centers shared by every
// level of a diagram.
type Columns []float64

// Cluster bins the centers of all nodes into logical columns.
//
// Centers are visited in ascending order. Each one is absorbed by the first
// existing bin (in creation order) within tolerance, which moves to the
// average of the two; otherwise it opens a new bin. Bins never merge with each
// other. The result is re-sorted because averaging can reorder bins.
func Cluster(nodes []PositionedNode, tolerance float64) Columns {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	centers := make([]int, len(nodes))
	for i, n := range nodes {
		centers[i] = n.Center()
	}
	slices.Sort(centers)

	bins := make(Columns, 0, len(centers))
	for _, c := range centers {
		center := float64(c)
		absorbed := false
		for i, b := range bins {
			if math.Abs(b-center) < tolerance {
				bins[i] = (b + center) / 2
				absorbed = true
				break
			}
		}
		if !absorbed {
			bins = append(bins, center)
		}
	}
	slices.Sort(bins)
	return bins
}

// Index returns the first column within tolerance of center, or -1.
func (c Columns) Index(center, tolerance float64) int {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	for i, b := range c {
		if math.Abs(center-b) < tolerance {
			return i
		}
	}
	return -1
}
