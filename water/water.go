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

//Package water builds and manipulates rigid TIP5P water models placed at
//hydrogen-bond anchor positions.
package water

import (
	"fmt"

	hydrate "github.com/gohydrate/gohydrate"
	"github.com/gohydrate/gohydrate/anchor"
	v3 "github.com/gohydrate/gohydrate/v3"
)

//TIP5P geometry and charges.
const (
	DistOH   = 0.9572 //A, oxygen to hydrogen
	DistOLp  = 0.7    //A, oxygen to lone pair
	AngleHOH = 104.52 //degrees
	AngleLp  = 109.47 //degrees

	ChargeH  = 0.2410
	ChargeLp = -0.2410

	//HydrogenType and LonePairType are the site type labels of the
	//satellites, shared with the forcefield vocabulary so the anchor
	//discovery that seeds the next hydration shell can match them.
	HydrogenType = "HD"
	LonePairType = "Lp"
)

//DefaultOxygenType is the map/forcefield atom type of the water oxygen.
const DefaultOxygenType = "OW"

type kind int

const (
	oxygenOnly kind = iota
	fiveSite
)

//Scorer evaluates the interaction energy of one site of a given atom type
//at a position. The grid package provides map-backed implementations.
type Scorer interface {
	Lookup(xyz *v3.Matrix, atomType string) float64
}

//A Water is one rigid water model. It starts as a lone oxygen placed at a
//hydrogen-bond anchor position and becomes a full 5-site model after
//BuildTIP5P. The orientation degrees of freedom (Rotate) move the four
//satellites as a rigid body about the oxygen; the site that fulfills the
//hydrogen bond to the parent anchor never moves relative to the oxygen.
//
//Water implements hydrate.SiteContainer, so anchor discovery can run on a
//placed water to seed the next hydration shell.
type Water struct {
	sites      *v3.Matrix //1 row (oxygen) or 5 rows (TIP5P)
	types      []string
	kind       kind
	role       anchor.Role //role of the parent anchor atom, not of the water
	anchorXYZ  *v3.Matrix
	anchorDir  *v3.Matrix //unit vector, oxygen toward the parent anchor
	oxygenType string

	energy      float64
	energyValid bool
}

//New places a lone water oxygen at xyz, hydrogen-bonded to the anchor atom
//at anchorXYZ whose role is the given one. The model stays oxygen-only
//until BuildTIP5P.
func New(xyz, anchorXYZ *v3.Matrix, role anchor.Role) (*Water, error) {
	if role != anchor.Donor && role != anchor.Acceptor {
		return nil, Error{message: fmt.Sprintf("hydrate/water: cannot bond a water to a %v anchor", role), deco: []string{"New"}}
	}
	d := v3.Zeros(1)
	d.Sub(anchorXYZ, xyz)
	u, err := v3.Unit(d)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	return &Water{
		sites:      xyz.Clone(),
		types:      []string{DefaultOxygenType},
		kind:       oxygenOnly,
		role:       role,
		anchorXYZ:  anchorXYZ.Clone(),
		anchorDir:  u,
		oxygenType: DefaultOxygenType,
	}, nil
}

//SetOxygenType changes the atom type used to score the oxygen site.
func (W *Water) SetOxygenType(t string) {
	W.oxygenType = t
	W.types[0] = t
	W.energyValid = false
}

//Role returns the role of the parent anchor atom.
func (W *Water) Role() anchor.Role { return W.role }

//Anchor returns the position of the parent anchor atom.
func (W *Water) Anchor() *v3.Matrix { return W.anchorXYZ.Clone() }

//BuildTIP5P expands an oxygen-only water into the full 5-site model. The
//first satellite points straight at the parent anchor and fulfills the
//hydrogen bond: a hydrogen if the anchor accepts, a lone pair if it
//donates. Its twin follows at the H-O-H (or Lp-O-Lp) angle, and the two
//complementary sites complete the tetrahedron on the opposite side.
func (W *Water) BuildTIP5P() error {
	if W.kind == fiveSite {
		return Error{message: "hydrate/water: model already built", deco: []string{"BuildTIP5P"}}
	}
	var d0, d2, firstAngle, secondAngle float64
	var labels []string
	switch W.role {
	case anchor.Acceptor:
		//the anchor accepts, so the water donates a hydrogen to it
		d0, d2 = DistOH, DistOLp
		firstAngle, secondAngle = AngleHOH, AngleLp
		labels = []string{HydrogenType, HydrogenType, LonePairType, LonePairType}
	case anchor.Donor:
		d0, d2 = DistOLp, DistOH
		firstAngle, secondAngle = AngleLp, AngleHOH
		labels = []string{LonePairType, LonePairType, HydrogenType, HydrogenType}
	default:
		return Error{message: fmt.Sprintf("hydrate/water: cannot orient a water toward a %v anchor", W.role), deco: []string{"BuildTIP5P"}}
	}
	o := W.sites.VecView(0)

	//first satellite, straight at the anchor
	a1 := v3.Zeros(1)
	a1.Scale(d0, W.anchorDir)
	a1.Add(a1, o)

	//its twin, tilted away by the first angle about any axis
	//perpendicular to the bond
	perp, err := v3.Perpendicular(W.anchorDir)
	if err != nil {
		return errDecorate(err, "BuildTIP5P")
	}
	perp.Add(perp, o)
	a2, err := v3.RotateAround(a1, o, perp, hydrate.Deg2Rad(firstAngle))
	if err != nil {
		return errDecorate(err, "BuildTIP5P")
	}
	a2, err = v3.Resize(a2, o, d0)
	if err != nil {
		return errDecorate(err, "BuildTIP5P")
	}

	//the complementary pair straddles the plane of the first two,
	//opposite their midpoint
	pm, err := v3.Opposed(o, a1, a2)
	if err != nil {
		return errDecorate(err, "BuildTIP5P")
	}
	ax := v3.Zeros(1)
	ax.Sub(a2, a1)
	u, err := v3.Unit(ax)
	if err != nil {
		return errDecorate(err, "BuildTIP5P")
	}
	ax.Add(o, u)
	sites := v3.Zeros(5)
	setRow(sites, 0, o)
	setRow(sites, 1, a1)
	setRow(sites, 2, a2)
	for i, half := range []float64{-secondAngle / 2, secondAngle / 2} {
		s, err := v3.RotateAround(pm, o, ax, hydrate.Deg2Rad(half))
		if err != nil {
			return errDecorate(err, "BuildTIP5P")
		}
		s, err = v3.Resize(s, o, d2)
		if err != nil {
			return errDecorate(err, "BuildTIP5P")
		}
		setRow(sites, 3+i, s)
	}
	W.sites = sites
	W.types = append([]string{W.oxygenType}, labels...)
	W.kind = fiveSite
	W.energyValid = false
	return nil
}

func setRow(m *v3.Matrix, i int, p *v3.Matrix) {
	m.SetRow(i, []float64{p.At(0, 0), p.At(0, 1), p.At(0, 2)})
}

//Built reports whether the water carries its four satellites.
func (W *Water) Built() bool { return W.kind == fiveSite }

//OccupiedSite returns the index of the satellite that fulfills the
//hydrogen bond to the parent anchor. It is always the first one built.
func (W *Water) OccupiedSite() int { return 1 }

//O returns the oxygen position.
func (W *Water) O() *v3.Matrix { return W.sites.VecView(0).Clone() }

//Translate adds shift to every site, moving the model as a rigid body.
//The hydrogen bond direction to the parent anchor is kept, not recomputed.
func (W *Water) Translate(shift *v3.Matrix) {
	W.sites.AddVec(W.sites, shift)
	W.energyValid = false
}

//Rotate spins the water about the axis from the oxygen through the ref
//site by angle degrees. The oxygen and the ref site stay put; with ref set
//to the occupied site this explores the orientations that preserve the
//hydrogen bond to the parent anchor.
func (W *Water) Rotate(angle float64, ref int) error {
	if W.kind != fiveSite {
		return Error{message: "hydrate/water: cannot rotate an oxygen-only model", deco: []string{"Rotate"}}
	}
	if ref <= 0 || ref >= W.sites.Len() {
		return Error{message: fmt.Sprintf("hydrate/water: rotation reference site %d out of range", ref), deco: []string{"Rotate"}}
	}
	o := W.sites.VecView(0).Clone()
	ax := W.sites.VecView(ref).Clone()
	rad := hydrate.Deg2Rad(angle)
	for i := 1; i < W.sites.Len(); i++ {
		if i == ref {
			continue
		}
		s, err := v3.RotateAround(W.sites.VecView(i), o, ax, rad)
		if err != nil {
			return errDecorate(err, "Rotate")
		}
		setRow(W.sites, i, s)
	}
	W.energyValid = false
	return nil
}

//Energy scores the water against s and caches the result until the next
//move. An oxygen-only model scores its single site; a full model scores
//the four satellites only, as the oxygen contribution is already folded
//into the placement maps.
func (W *Water) Energy(s Scorer) float64 {
	if W.energyValid {
		return W.energy
	}
	e := 0.0
	if W.kind == oxygenOnly {
		e = s.Lookup(W.sites.VecView(0), W.oxygenType)
	} else {
		for i := 1; i < W.sites.Len(); i++ {
			e += s.Lookup(W.sites.VecView(i), W.types[i])
		}
	}
	W.energy = e
	W.energyValid = true
	return e
}

//Clone returns an independent deep copy, including the cached energy.
func (W *Water) Clone() *Water {
	types := make([]string, len(W.types))
	copy(types, W.types)
	return &Water{
		sites:       W.sites.Clone(),
		types:       types,
		kind:        W.kind,
		role:        W.role,
		anchorXYZ:   W.anchorXYZ.Clone(),
		anchorDir:   W.anchorDir.Clone(),
		oxygenType:  W.oxygenType,
		energy:      W.energy,
		energyValid: W.energyValid,
	}
}

//SiteContainer implementation. A water is a star: every satellite bonds
//the oxygen and nothing else.

func (W *Water) Len() int { return W.sites.Len() }

func (W *Water) Coord(i int) *v3.Matrix { return W.sites.VecView(i) }

func (W *Water) SiteType(i int) string { return W.types[i] }

func (W *Water) AtomicNumber(i int) int {
	if i == 0 {
		return 8
	}
	return 1
}

func (W *Water) PartialCharge(i int) float64 {
	if i == 0 || W.kind == oxygenOnly {
		return 0
	}
	if W.types[i] == HydrogenType {
		return ChargeH
	}
	return ChargeLp
}

func (W *Water) Neighbors(start, depth int, hydrogens bool) ([][]int, error) {
	n := W.Len()
	if start < 0 || start >= n {
		return nil, Error{message: fmt.Sprintf("hydrate/water: site %d out of range (%d sites)", start, n), deco: []string{"Neighbors"}}
	}
	levels := [][]int{{start}}
	if depth < 1 || n == 1 {
		return levels, nil
	}
	others := func(skip int) []int {
		var ret []int
		for i := 1; i < n; i++ {
			if i != skip {
				ret = append(ret, i)
			}
		}
		return ret
	}
	if start == 0 {
		if hydrogens {
			levels = append(levels, others(-1))
		}
		return levels, nil
	}
	levels = append(levels, []int{0})
	if depth >= 2 && hydrogens {
		levels = append(levels, others(start))
	}
	return levels, nil
}

//Errors

//Error is the water package error type. It implements the goHydrate Error
//interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(hydrate.Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
