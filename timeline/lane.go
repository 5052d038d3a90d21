// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"cmp"
	"slices"
)

// Point sets a parameter to Value at Time.
type Point struct {
	Time  float64
	Value float64
}

// Lane is the automation of one parameter, with points ordered by time.
type Lane struct {
	Parameter string
	Points    []Point
}

// NewLane copies points and sorts them by time. Points at the same time keep
// their given order.
func NewLane(parameter string, points ...Point) Lane {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b Point) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return Lane{Parameter: parameter, Points: sorted}
}
