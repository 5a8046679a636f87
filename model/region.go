package model

import "math"

// Region is the geographic rectangle, in degrees, over which a transform's
// parameters were fit. It is advisory metadata; lookups never enforce it.
type Region struct {
	LowerLeftLat   float64
	LowerLeftLong  float64
	UpperRightLat  float64
	UpperRightLong float64
}

// GlobalRegion covers the whole Earth.
var GlobalRegion = Region{LowerLeftLat: -90, LowerLeftLong: -180, UpperRightLat: 90, UpperRightLong: 180}

// Defined reports whether all four corners are numbers. Abstract frames carry
// NaN regions.
func (r Region) Defined() bool {
	return !math.IsNaN(r.LowerLeftLat) && !math.IsNaN(r.LowerLeftLong) &&
		!math.IsNaN(r.UpperRightLat) && !math.IsNaN(r.UpperRightLong)
}

// Contains reports whether (lat, long) lies inside the region, bounds
// inclusive. A region whose lower-left longitude exceeds its upper-right
// longitude crosses the antimeridian.
func (r Region) Contains(lat, long float64) bool {
	if !r.Defined() || math.IsNaN(lat) || math.IsNaN(long) {
		return false
	}
	if lat < r.LowerLeftLat || lat > r.UpperRightLat {
		return false
	}
	if r.LowerLeftLong <= r.UpperRightLong {
		return long >= r.LowerLeftLong && long <= r.UpperRightLong
	}
	return long >= r.LowerLeftLong || long <= r.UpperRightLong
}
