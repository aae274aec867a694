/*
 * atoms.go, part of goHydrate.
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

package hydrate

import (
	"fmt"

	"github.com/gohydrate/gohydrate/bond"
	v3 "github.com/gohydrate/gohydrate/v3"
)

/**Note: some functions here panic instead of returning errors. This is
 * because they are "fundamental" accessors: if something goes wrong in them,
 * the program is way-most-likely wrong and should crash. All panics are
 * related to out-of-bounds indexes or nil objects.**/

//Atom contains the per-atom data except for the coordinates, which live in
//a v3.Matrix held by the container (one row per atom, same indexing).
type Atom struct {
	Name   string  //atom name in the source file (e.g. "OG1")
	Type   string  //type label from the forcefield vocabulary (e.g. "OA")
	Symbol string  //element symbol
	Number int     //atomic number
	Charge float64 //partial charge
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("hydrate: attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

//SiteContainer is the capability interface for anything that holds indexed
//sites with positions and type labels: the solute molecule, but also a
//placed water, which carries its own synthetic donor/acceptor sites. Anchor
//discovery operates on this interface, so shells of waters can seed further
//shells.
type SiteContainer interface {
	//Len returns the number of sites.
	Len() int

	//Coord returns a view of the position of site i. Should panic if out
	//of range.
	Coord(i int) *v3.Matrix

	//SiteType returns the type label of site i.
	SiteType(i int) string

	//AtomicNumber returns the atomic number of site i. Pseudo-sites
	//(lone pairs) report 1, like hydrogens.
	AtomicNumber(i int) int

	//PartialCharge returns the partial charge of site i.
	PartialCharge(i int) float64

	//Neighbors walks the bond graph breadth-first from site start, up to
	//depth bonds away, and returns the site indexes grouped by distance
	//(element 0 holds start itself). Within each group, non-hydrogen
	//sites come before hydrogens. If hydrogens is false, hydrogens are
	//excluded from the walk entirely. It fails with a NoSuchAtom error
	//if start is out of range.
	Neighbors(start, depth int, hydrogens bool) ([][]int, error)
}

//Molecule is the container for a solute: atoms, their coordinates and the
//bonds between them. It is produced once by the structure source and
//treated as read-only by the geometry code.
type Molecule struct {
	atoms  []*Atom
	coords *v3.Matrix
	bonds  [][2]int
	graph  *bond.Graph
}

//NewMolecule makes a Molecule from atoms, their coordinates (one row per
//atom) and a list of bonds as index pairs. The bond list may be nil, in
//which case AssignBonds can fill it later.
func NewMolecule(atoms []*Atom, coords *v3.Matrix, bonds [][2]int) (*Molecule, error) {
	if atoms == nil || coords == nil {
		return nil, &CError{msg: "hydrate: nil atoms or coordinates", deco: []string{"NewMolecule"}}
	}
	if len(atoms) != coords.Len() {
		return nil, &CError{msg: fmt.Sprintf("hydrate: %d atoms but %d coordinates", len(atoms), coords.Len()), deco: []string{"NewMolecule"}}
	}
	return &Molecule{atoms: atoms, coords: coords, bonds: bonds}, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.atoms)
}

//Atom returns the Atom corresponding to index i. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i < 0 || i >= M.Len() {
		panic("hydrate: requested Atom out of bounds")
	}
	return M.atoms[i]
}

//Coord returns a view of the position of atom i. Panics if out of range.
func (M *Molecule) Coord(i int) *v3.Matrix {
	if i < 0 || i >= M.Len() {
		panic("hydrate: requested coordinates out of bounds")
	}
	return M.coords.VecView(i)
}

//Coords returns the coordinate matrix of the molecule, one row per atom.
func (M *Molecule) Coords() *v3.Matrix {
	return M.coords
}

//SiteType returns the type label of atom i.
func (M *Molecule) SiteType(i int) string {
	return M.Atom(i).Type
}

//AtomicNumber returns the atomic number of atom i.
func (M *Molecule) AtomicNumber(i int) int {
	return M.Atom(i).Number
}

//PartialCharge returns the partial charge of atom i.
func (M *Molecule) PartialCharge(i int) float64 {
	return M.Atom(i).Charge
}

//Bonds returns the bond list of the molecule as index pairs.
func (M *Molecule) Bonds() [][2]int {
	return M.bonds
}

//Neighbors implements the SiteContainer traversal over the molecule's
//bond graph. The graph is built on first use and kept until the bond list
//changes.
func (M *Molecule) Neighbors(start, depth int, hydrogens bool) ([][]int, error) {
	if M.graph == nil {
		g, err := bond.NewGraph(M.bonds, M)
		if err != nil {
			return nil, errDecorate(err, "Neighbors")
		}
		M.graph = g
	}
	ret, err := M.graph.Neighbors(start, depth, hydrogens)
	if err != nil {
		return nil, errDecorate(err, "Neighbors")
	}
	return ret, nil
}

//Clone returns a fully independent copy of the molecule: atoms, coordinates
//and bond list are all deep-copied. It costs O(atoms + bonds) and is never
//called implicitly by the library.
func (M *Molecule) Clone() *Molecule {
	atoms := make([]*Atom, len(M.atoms))
	for i, a := range M.atoms {
		atoms[i] = a.Copy()
	}
	bonds := make([][2]int, len(M.bonds))
	copy(bonds, M.bonds)
	return &Molecule{atoms: atoms, coords: M.coords.Clone(), bonds: bonds}
}
