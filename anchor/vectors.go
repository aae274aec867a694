//Package anchor computes where water oxygens must sit around
//hydrogen-bond-capable atoms. Given an atom's hybridization class, its
//count of expected water contacts and the positions of its bonded
//neighbors, Vectors produces 1-3 target positions at exactly the ideal
//hydrogen-bond length from the atom; Discover runs this over a whole
//container, driven by a table of atom type definitions.
package anchor

import (
	"fmt"

	hydrate "github.com/gohydrate/gohydrate"
	v3 "github.com/gohydrate/gohydrate/v3"
)

//Hybridization classes. The numeric values are part of the type definition
//vocabulary and of the forcefield file format.
const (
	Linear      = 1 //sp, e.g. a donor hydrogen
	Planar      = 2 //sp2, e.g. a backbone carbonyl oxygen
	Tetrahedral = 3 //sp3, e.g. a hydroxyl oxygen
)

//tetAngle is the ideal tetrahedral angle, in degrees.
const tetAngle = 109.471

//Vectors returns the target water-oxygen positions for one anchor atom:
//one position per expected water contact, each at exactly hbLength from
//anchorXYZ. neigh holds the positions of the atoms around the anchor
//grouped by bond distance, as produced by the SiteContainer traversal
//(element 0 is the anchor itself, element 1 its direct neighbors, element
//2 the ones two bonds away, hydrogens last within each group).
//
//It fails with an InsufficientGeometry error when the bond graph does not
//supply enough neighbors for the requested case, an UnsupportedCase error
//for a hybridization/contact combination outside the table, and a
//DegenerateVector error when the neighbor geometry collapses (e.g. two
//neighbors at the same position). The last two neighbor-dependent failures
//are recoverable: the caller is expected to skip the anchor.
func Vectors(anchorXYZ *v3.Matrix, hyb, nwater int, neigh [][]*v3.Matrix, hbLength float64) ([]*v3.Matrix, error) {
	var p *v3.Matrix        //the base point, rotated (or not) into each output
	var axis *v3.Matrix     //second point of the rotation axis, the first being anchorXYZ
	var angles []float64    //degrees; converted right before each rotation
	var err error

	//contact counts of 3 always resolve as tetrahedral placements,
	//whatever the declared hybridization.
	if nwater == 3 {
		hyb = Tetrahedral
	}
	n1, err := neighbor(neigh, 1, 0)
	if err != nil {
		return nil, errDecorate(err, "Vectors")
	}

	switch {
	case hyb == Linear && nwater == 1:
		//single point opposite the sole neighbor, no rotation.
		p = v3.Zeros(1)
		p.Sub(anchorXYZ, n1)
		p.Add(p, anchorXYZ)
		angles = []float64{0}
	case hyb == Planar && nwater == 1:
		//the third leg of the trigonal plane, opposite the two
		//direct neighbors.
		n2, err := neighbor(neigh, 1, 1)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		p, err = v3.Opposed(anchorXYZ, n1, n2)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		angles = []float64{0}
	case hyb == Planar && nwater == 2:
		//two waters, aligned with the depth-2 neighbor and separated
		//by 120 degrees about the normal of the plane through the
		//anchor and the two reference atoms.
		n2, err := neighbor(neigh, 2, 0)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		axis, err = planeNormalPoint(anchorXYZ, n1, n2)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		p = n1.Clone()
		angles = []float64{-120, 120}
	case hyb == Tetrahedral && nwater == 1:
		//completion of the tetrahedron given three unit-length
		//neighbor directions.
		v1, v2, v3v, err := unitNeighbors3(anchorXYZ, neigh)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		p, err = v3.Opposed(anchorXYZ, v1, v2, v3v)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		angles = []float64{0}
	case hyb == Tetrahedral && nwater == 2:
		//completion of the tetrahedron given two unit-length neighbor
		//directions, then +-60 degrees about the in-plane axis through
		//the two unit neighbors.
		v1, v2, err := unitNeighbors2(anchorXYZ, neigh)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		d := v3.Zeros(1)
		d.Sub(v2, v1)
		u, err := v3.Unit(d)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		axis = v3.Zeros(1)
		axis.Add(anchorXYZ, u)
		p, err = v3.Opposed(anchorXYZ, v1, v2)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		angles = []float64{-60, 60}
	case hyb == Tetrahedral && nwater == 3:
		//no second reference exists: tilt the sole neighbor by the
		//tetrahedral angle about an arbitrary perpendicular axis,
		//then spread three waters about the neighbor-anchor axis.
		d := v3.Zeros(1)
		d.Sub(n1, anchorXYZ)
		u, err := v3.Unit(d)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		perp, err := v3.Perpendicular(u)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		axis = v3.Zeros(1)
		axis.Add(anchorXYZ, perp)
		p, err = v3.RotateAround(n1, anchorXYZ, axis, hydrate.Deg2Rad(tetAngle))
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		axis = v3.Zeros(1)
		axis.Sub(anchorXYZ, n1)
		u, err = v3.Unit(axis)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		axis.Add(anchorXYZ, u)
		angles = []float64{0, -120, 120}
	default:
		return nil, &Error{message: fmt.Sprintf("hydrate/anchor: no construction for hybridization %d with %d water contacts", hyb, nwater), kind: unsupportedCase}
	}

	//Each output is the base point rotated by its angle about the case's
	//axis, then unconditionally rescaled to hbLength from the anchor.
	//Rescaling is always the last step.
	ret := make([]*v3.Matrix, 0, len(angles))
	for _, angle := range angles {
		vec := p
		if angle != 0 {
			vec, err = v3.RotateAround(p, anchorXYZ, axis, hydrate.Deg2Rad(angle))
			if err != nil {
				return nil, errDecorate(err, "Vectors")
			}
		}
		vec, err = v3.Resize(vec, anchorXYZ, hbLength)
		if err != nil {
			return nil, errDecorate(err, "Vectors")
		}
		ret = append(ret, vec)
	}
	return ret, nil
}

//neighbor returns the kth neighbor position at the given depth, or an
//InsufficientGeometry error if the traversal did not reach that far.
func neighbor(neigh [][]*v3.Matrix, depth, k int) (*v3.Matrix, error) {
	if len(neigh) <= depth || len(neigh[depth]) <= k {
		return nil, &Error{message: fmt.Sprintf("hydrate/anchor: case needs neighbor %d at bond distance %d, not present in the bond graph", k+1, depth), kind: insufficientGeometry}
	}
	return neigh[depth][k], nil
}

//unitNeighbors2 returns the first two direct neighbors projected to unit
//distance from the anchor. Without the normalization the completion point
//would drift toward the longer bond.
func unitNeighbors2(anchorXYZ *v3.Matrix, neigh [][]*v3.Matrix) (*v3.Matrix, *v3.Matrix, error) {
	var ret [2]*v3.Matrix
	for i := range ret {
		n, err := neighbor(neigh, 1, i)
		if err != nil {
			return nil, nil, err
		}
		u, err := v3.Resize(n, anchorXYZ, 1.0)
		if err != nil {
			return nil, nil, err
		}
		ret[i] = u
	}
	return ret[0], ret[1], nil
}

func unitNeighbors3(anchorXYZ *v3.Matrix, neigh [][]*v3.Matrix) (*v3.Matrix, *v3.Matrix, *v3.Matrix, error) {
	v1, v2, err := unitNeighbors2(anchorXYZ, neigh)
	if err != nil {
		return nil, nil, nil, err
	}
	n, err := neighbor(neigh, 1, 2)
	if err != nil {
		return nil, nil, nil, err
	}
	u, err := v3.Resize(n, anchorXYZ, 1.0)
	if err != nil {
		return nil, nil, nil, err
	}
	return v1, v2, u, nil
}

//planeNormalPoint returns the point at unit distance from b along the
//normal of the plane through a, b and c.
func planeNormalPoint(b, a, c *v3.Matrix) (*v3.Matrix, error) {
	ab := v3.Zeros(1)
	ab.Sub(a, b)
	cb := v3.Zeros(1)
	cb.Sub(c, b)
	n := v3.Zeros(1)
	n.Cross(ab, cb)
	u, err := v3.Unit(n)
	if err != nil {
		return nil, err
	}
	u.Add(u, b)
	return u, nil
}

//Errors

type errKind int

const (
	plain errKind = iota
	insufficientGeometry
	unsupportedCase
)

//Error is the anchor package error type. It implements the goHydrate Error
//interface.
type Error struct {
	message string
	deco    []string
	kind    errKind
}

func (err *Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IsInsufficientGeometry returns whether the error comes from a bond graph
//that can't supply the neighbor count required by the requested case.
func (err *Error) IsInsufficientGeometry() bool { return err.kind == insufficientGeometry }

//IsUnsupportedCase returns whether the error comes from a
//hybridization/contact-count combination outside the construction table.
func (err *Error) IsUnsupportedCase() bool { return err.kind == unsupportedCase }

//IsInsufficientGeometry returns whether err signals that the bond graph
//couldn't supply enough neighbors for an anchor case. Recoverable: skip
//the anchor.
func IsInsufficientGeometry(err error) bool {
	e, ok := err.(interface{ IsInsufficientGeometry() bool })
	return ok && e.IsInsufficientGeometry()
}

//IsUnsupportedCase returns whether err signals a hybridization/contact
//combination outside the table of constructions. This is a configuration
//error in the type definitions, not a geometry condition.
func IsUnsupportedCase(err error) bool {
	e, ok := err.(interface{ IsUnsupportedCase() bool })
	return ok && e.IsUnsupportedCase()
}

//errDecorate decorates err with the caller's name if it implements the
//goHydrate Error interface.
func errDecorate(err error, caller string) error {
	e, ok := err.(hydrate.Error)
	if !ok {
		return err
	}
	e.Decorate(caller)
	return err
}
