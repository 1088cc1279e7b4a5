// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"cmp"
	"slices"
)

// HueOrder returns the indices of colours ordered by hue, then saturation,
// both ascending. The order is stable so equal keys keep their input order.
func HueOrder(colours []Colour) []int {
	order := make([]int, len(colours))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareHue(colours[a], colours[b])
	})
	return order
}

// compareHue orders by hue, breaking ties on saturation.
func compareHue(a, b Colour) int {
	if c := cmp.Compare(a.Hue(), b.Hue()); c != 0 {
		return c
	}
	return cmp.Compare(a.Saturation(), b.Saturation())
}
