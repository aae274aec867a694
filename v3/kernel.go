/*
 * kernel.go, part of goHydrate.
 *
 * Copyright 2024 The goHydrate developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import (
	"math"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Norm returns the Euclidean norm of the first vector of F.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.Dot(F))
}

//Distance returns the Euclidean distance between the first vectors of a and b.
func Distance(a, b *Matrix) float64 {
	d := Zeros(1)
	d.Sub(a, b)
	return d.Norm()
}

//Unit returns the unit vector with the direction of v. It returns a
//DegenerateVector error if v has near-zero magnitude, in which case no
//direction can be defined.
func Unit(v *Matrix) (*Matrix, error) {
	norm := v.Norm()
	if norm <= appzero {
		return nil, Error{message: "goHydrate/v3: Attempted to normalize a near-zero vector", deco: []string{"Unit"}, degenerate: true}
	}
	ret := Zeros(1)
	ret.Scale(1.0/norm, v)
	return ret, nil
}

//Resize returns the point p moved along the origin->p direction so that its
//distance from origin equals exactly length. It returns a DegenerateVector
//error if p and origin coincide.
func Resize(p, origin *Matrix, length float64) (*Matrix, error) {
	d := Zeros(1)
	d.Sub(p, origin)
	u, err := Unit(d)
	if err != nil {
		return nil, errDecorate(err, "Resize")
	}
	ret := Zeros(1)
	ret.Scale(length, u)
	ret.Add(ret, origin)
	return ret, nil
}

//Perpendicular returns a unit vector perpendicular to v. The vector is built
//by crossing v with the cartesian axis along which v has its smallest
//component, so the construction never degenerates for a non-zero v.
func Perpendicular(v *Matrix) (*Matrix, error) {
	small := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v.At(0, i)) < math.Abs(v.At(0, small)) {
			small = i
		}
	}
	axis := Zeros(1)
	axis.Set(0, small, 1)
	c := Zeros(1)
	c.Cross(v, axis)
	ret, err := Unit(c)
	if err != nil {
		return nil, errDecorate(err, "Perpendicular")
	}
	return ret, nil
}

//Opposed returns the point at unit distance from origin in the direction
//opposite the centroid of the given points. It is the geometric completion
//used to place the missing leg of a trigonal plane or a tetrahedron. It
//returns a DegenerateVector error if the centroid coincides with origin.
func Opposed(origin *Matrix, points ...*Matrix) (*Matrix, error) {
	centroid := Zeros(1)
	for _, p := range points {
		centroid.Add(centroid, p)
	}
	centroid.Scale(1.0/float64(len(points)), centroid)
	d := Zeros(1)
	d.Sub(origin, centroid)
	u, err := Unit(d)
	if err != nil {
		return nil, errDecorate(err, "Opposed")
	}
	u.Add(u, origin)
	return u, nil
}

//RotateAround returns the point p rigidly rotated by angle radians, in the
//right-hand sense, about the line that passes through axp1 in the direction
//of axp2-axp1 (Rodrigues' formula). It returns a DegenerateVector error if
//axp1 and axp2 coincide.
func RotateAround(p, axp1, axp2 *Matrix, angle float64) (*Matrix, error) {
	axis := Zeros(1)
	axis.Sub(axp2, axp1)
	k, err := Unit(axis)
	if err != nil {
		return nil, errDecorate(err, "RotateAround")
	}
	v := Zeros(1)
	v.Sub(p, axp1)
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	kxv := Zeros(1)
	kxv.Cross(k, v)
	kdotv := k.Dot(v)
	ret := Zeros(1)
	ret.Scale(cos, v)
	kxv.Scale(sin, kxv)
	ret.Add(ret, kxv)
	kpart := Zeros(1)
	kpart.Scale(kdotv*(1-cos), k)
	ret.Add(ret, kpart)
	ret.Add(ret, axp1)
	return ret, nil
}

//errDecorate asserts that the error implements the goHydrate Error interface
//and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
