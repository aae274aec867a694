/*
 * bonds.go, part of goHydrate.
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
	"sort"

	v3 "github.com/gohydrate/gohydrate/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
//Note that just common "bio-elements" are present.
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31. Since H always keeps only one bond, a longer radius is harmless: the extra bonds get eliminated later.
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
	"Mg": 1.41,
	"Ca": 1.76,
	"Zn": 1.22,
	"Fe": 1.52,
	"Na": 1.66,
	"K":  2.03,
}

//A map for checking that atoms don't have too many bonds. A value of 0
//means undefined, i.e. that this atom shouldn't be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Br": 1,
	"I":  1,
}

type candidateBond struct {
	i, j int
	dist float64
}

//AssignBonds fills the bond list of the molecule based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33. It
//might get slow for large systems: it's really not thought for mass
//screening, just for preparing one receptor. Any previous bond list is
//replaced.
func AssignBonds(mol *Molecule) error {
	tot := mol.Len()
	d := v3.Zeros(1)
	cands := make([]candidateBond, 0, tot)
	for i := 0; i < tot; i++ {
		at1 := mol.Atom(i)
		cov1, ok := symbolCovrad[at1.Symbol]
		if !ok {
			err := &CError{msg: fmt.Sprintf("hydrate: couldn't find the covalent radius for %s %d", at1.Symbol, i)}
			err.Decorate("AssignBonds")
			return err
		}
		for j := i + 1; j < tot; j++ {
			at2 := mol.Atom(j)
			cov2, ok := symbolCovrad[at2.Symbol]
			if !ok {
				err := &CError{msg: fmt.Sprintf("hydrate: couldn't find the covalent radius for %s %d", at2.Symbol, j)}
				err.Decorate("AssignBonds")
				return err
			}
			d.Sub(mol.Coord(j), mol.Coord(i))
			dist := d.Norm()
			if dist < cov1+cov2+bondtol && dist > tooclose {
				cands = append(cands, candidateBond{i: i, j: j, dist: dist})
			}
		}
	}
	//Now we drop the longest bonds of any atom that got too many.
	perAtom := make([][]int, tot) //candidate indexes per atom
	for k, b := range cands {
		perAtom[b.i] = append(perAtom[b.i], k)
		perAtom[b.j] = append(perAtom[b.j], k)
	}
	dropped := make([]bool, len(cands))
	for i := 0; i < tot; i++ {
		max := symbolMaxBonds[mol.Atom(i).Symbol]
		if max == 0 { //no specified number of bonds for this atom.
			continue
		}
		mine := perAtom[i]
		sort.Slice(mine, func(a, b int) bool { return cands[mine[a]].dist < cands[mine[b]].dist })
		kept := 0
		for _, k := range mine {
			if dropped[k] {
				continue
			}
			kept++
			if kept > max {
				dropped[k] = true
			}
		}
	}
	bonds := make([][2]int, 0, len(cands))
	for k, b := range cands {
		if !dropped[k] {
			bonds = append(bonds, [2]int{b.i, b.j})
		}
	}
	mol.bonds = bonds
	mol.graph = nil
	return nil
}
