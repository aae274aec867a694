/*
 * Copyright 2024 The goHydrate developers
 *
 * This library is free software; you can redistribute it and/or
 * modify it under the terms of the GNU Lesser General Public
 * License as published by the Free Software Foundation; either
 * version 2.1 of the License, or (at your option) any later version.
 *
 * This library is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * Lesser General Public License for more details.
 */

//Package clash tests candidate water placements for steric overlap with
//already-placed coordinates.
package clash

import (
	"math"

	v3 "github.com/gohydrate/gohydrate/v3"
)

//IsClash reports whether any point of test comes strictly closer than
//radius to any point of ref. A pair at exactly radius does not clash.
//Either set may be a single point.
func IsClash(test, ref *v3.Matrix, radius float64) bool {
	dvec := v3.Zeros(1)
	for i := 0; i < test.Len(); i++ {
		a := test.VecView(i)
		for j := 0; j < ref.Len(); j++ {
			dvec.Sub(a, ref.VecView(j))
			if dvec.Norm()-radius < 0 {
				return true
			}
		}
	}
	return false
}

//Closest returns the smallest distance between a point of test and a point
//of ref. It returns +Inf when either set is empty.
func Closest(test, ref *v3.Matrix) float64 {
	dvec := v3.Zeros(1)
	closest := math.Inf(1)
	for i := 0; i < test.Len(); i++ {
		a := test.VecView(i)
		for j := 0; j < ref.Len(); j++ {
			dvec.Sub(a, ref.VecView(j))
			if d := dvec.Norm(); d < closest {
				closest = d
			}
		}
	}
	return closest
}
