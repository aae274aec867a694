/*
 * v3_test.go, part of goHydrate.
 *
 * Copyright 2024 The goHydrate developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 */

package v3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func TestUnit(Te *testing.T) {
	v := Vec(3, 0, 4)
	u, err := Unit(v)
	if err != nil {
		Te.Error(err)
	}
	if !scalar.EqualWithinAbs(u.Norm(), 1.0, tol) {
		Te.Errorf("Unit vector has norm %f", u.Norm())
	}
	if !scalar.EqualWithinAbs(u.At(0, 0), 0.6, tol) || !scalar.EqualWithinAbs(u.At(0, 2), 0.8, tol) {
		Te.Errorf("Wrong unit vector %v", u)
	}
}

func TestUnitDegenerate(Te *testing.T) {
	_, err := Unit(Vec(0, 0, 1e-15))
	if err == nil {
		Te.Fatal("Expected a DegenerateVector error for a near-zero vector")
	}
	if !IsDegenerate(err) {
		Te.Errorf("Error is not flagged as degenerate: %v", err)
	}
}

func TestAddVecInPlace(Te *testing.T) {
	m := Zeros(3)
	for i := 0; i < 3; i++ {
		m.Set(i, 0, float64(i))
		m.Set(i, 1, 2*float64(i))
	}
	m.AddVec(m, Vec(1, -1, 0.5))
	for i := 0; i < 3; i++ {
		want := Vec(float64(i)+1, 2*float64(i)-1, 0.5)
		if Distance(m.VecView(i), want) > tol {
			Te.Errorf("row %d is %v, want %v", i, m.VecView(i), want)
		}
	}
}

func TestResize(Te *testing.T) {
	origin := Vec(1, 1, 1)
	p := Vec(1, 1, 5)
	r, err := Resize(p, origin, 2.5)
	if err != nil {
		Te.Error(err)
	}
	if !scalar.EqualWithinAbs(Distance(r, origin), 2.5, tol) {
		Te.Errorf("Resized point at distance %f, wanted 2.5", Distance(r, origin))
	}
	//direction must be preserved
	if !scalar.EqualWithinAbs(r.At(0, 2), 3.5, tol) {
		Te.Errorf("Resize changed the direction: %v", r)
	}
	if _, err := Resize(origin, origin, 1.0); !IsDegenerate(err) {
		Te.Error("Expected a degenerate error when resizing a point onto itself")
	}
}

func TestPerpendicular(Te *testing.T) {
	for _, v := range []*Matrix{Vec(1, 0, 0), Vec(0.3, -2, 0.5), Vec(0, 0, -4)} {
		p, err := Perpendicular(v)
		if err != nil {
			Te.Error(err)
		}
		if !scalar.EqualWithinAbs(p.Dot(v), 0.0, tol) {
			Te.Errorf("Perpendicular of %v is not orthogonal: %v", v, p)
		}
		if !scalar.EqualWithinAbs(p.Norm(), 1.0, tol) {
			Te.Errorf("Perpendicular of %v is not unitary: %v", v, p)
		}
	}
}

func TestRotateAround(Te *testing.T) {
	//rotating (1,0,0) by 90 degrees around the z axis through the origin
	//must give (0,1,0), right-hand sense.
	p := Vec(1, 0, 0)
	axp1 := Vec(0, 0, 0)
	axp2 := Vec(0, 0, 1)
	r, err := RotateAround(p, axp1, axp2, math.Pi/2)
	if err != nil {
		Te.Error(err)
	}
	if !scalar.EqualWithinAbs(r.At(0, 0), 0, tol) || !scalar.EqualWithinAbs(r.At(0, 1), 1, tol) || !scalar.EqualWithinAbs(r.At(0, 2), 0, tol) {
		Te.Errorf("Wrong rotation result %v", r)
	}
}

func TestRotateAroundRoundTrip(Te *testing.T) {
	p := Vec(1.3, -0.2, 2.7)
	axp1 := Vec(0.5, 0.5, 0.5)
	axp2 := Vec(1.5, -0.5, 2.5)
	angle := 1.1
	r, err := RotateAround(p, axp1, axp2, angle)
	if err != nil {
		Te.Error(err)
	}
	back, err := RotateAround(r, axp1, axp2, -angle)
	if err != nil {
		Te.Error(err)
	}
	for i := 0; i < 3; i++ {
		if !scalar.EqualWithinAbs(back.At(0, i), p.At(0, i), tol) {
			Te.Errorf("Round trip failed: %v vs %v", back, p)
		}
	}
}

func TestOpposed(Te *testing.T) {
	origin := Vec(0, 0, 0)
	a := Vec(1, 0, 0)
	b := Vec(0, 1, 0)
	op, err := Opposed(origin, a, b)
	if err != nil {
		Te.Error(err)
	}
	//must point opposite the bisector of a and b
	want := -1.0 / math.Sqrt(2)
	if !scalar.EqualWithinAbs(op.At(0, 0), want, tol) || !scalar.EqualWithinAbs(op.At(0, 1), want, tol) {
		Te.Errorf("Wrong opposed point %v", op)
	}
	if _, err := Opposed(a, a); !IsDegenerate(err) {
		Te.Error("Expected a degenerate error when the centroid falls on the origin")
	}
}
