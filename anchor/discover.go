package anchor

import (
	"fmt"
	"sort"

	hydrate "github.com/gohydrate/gohydrate"
	v3 "github.com/gohydrate/gohydrate/v3"
)

//Role is the hydrogen-bond role of an atom type.
type Role int

const (
	None Role = iota
	Donor
	Acceptor
)

func (r Role) String() string {
	switch r {
	case Donor:
		return "donor"
	case Acceptor:
		return "acceptor"
	default:
		return "none"
	}
}

//TypeDefinition describes one atom type of the water forcefield: how to
//find the atoms of that type (Pattern, resolved by a Matcher) and how
//waters hydrogen-bond to them. Definitions are consumed read-only.
//Priority decides which definition claims an atom when several patterns
//match it: the highest priority wins, and ties must be rejected when the
//definition set is loaded (see the field package), so the outcome never
//depends on declaration order.
type TypeDefinition struct {
	Name     string
	Priority int
	Role     Role
	Hyb      int     //hybridization class: Linear, Planar or Tetrahedral
	NWater   int     //expected water contacts: 1, 2 or 3
	HBLength float64 //ideal anchor-to-water-oxygen distance, in A
	Pattern  string
}

//Matcher finds the atoms of a container that satisfy a named structural
//pattern. The first element of each returned tuple is the anchor atom
//index. Pattern matching itself (SMARTS or otherwise) is outside this
//library; the field package provides a type-label matcher.
type Matcher interface {
	Match(pattern string, c hydrate.SiteContainer) [][]int
}

//An Anchor is one hydrogen-bond attachment point: the index of the anchor
//atom, the absolute target position for the water oxygen, the role of the
//anchor and the name of the type definition it came from. An atom with a
//contact count of 2 or 3 yields that many anchors.
type Anchor struct {
	AtomIndex int
	Vector    *v3.Matrix
	Role      Role
	TypeName  string
}

//Skipped records an atom whose anchor geometry could not be computed, and
//why. A skipped atom never aborts discovery for the rest of the container.
type Skipped struct {
	AtomIndex int
	TypeName  string
	Err       error
}

//Discover iterates the type definitions over the container, in descending
//priority order, and returns every hydrogen-bond anchor found. Each atom is
//claimed by at most one definition: the first (highest-priority) pattern
//that matches it wins and blocks all later matches for that atom, even when
//the winning definition's role is "none". Geometry failures
//(InsufficientGeometry, DegenerateVector) are collected per-atom in the
//second return value and do not abort the iteration; an UnsupportedCase
//failure is collected too, since it is confined to one definition. The
//anchors are returned grouped by atom index, ascending, preserving the
//per-atom vector order.
func Discover(c hydrate.SiteContainer, defs []TypeDefinition, m Matcher) ([]Anchor, []Skipped, error) {
	if m == nil {
		return nil, nil, &Error{message: "hydrate/anchor: nil pattern matcher", deco: []string{"Discover"}}
	}
	byPriority := make([]TypeDefinition, len(defs))
	copy(byPriority, defs)
	sort.SliceStable(byPriority, func(i, j int) bool { return byPriority[i].Priority > byPriority[j].Priority })

	visited := make([]bool, c.Len())
	anchors := make([]Anchor, 0, c.Len())
	var skipped []Skipped
	for _, def := range byPriority {
		for _, match := range m.Match(def.Pattern, c) {
			if len(match) == 0 {
				continue
			}
			idx := match[0]
			if idx < 0 || idx >= c.Len() {
				skipped = append(skipped, Skipped{AtomIndex: idx, TypeName: def.Name,
					Err: &Error{message: fmt.Sprintf("hydrate/anchor: matcher returned atom %d, out of range", idx)}})
				continue
			}
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if def.Role == None {
				continue
			}
			vecs, err := vectorsFor(c, idx, def)
			if err != nil {
				skipped = append(skipped, Skipped{AtomIndex: idx, TypeName: def.Name, Err: err})
				continue
			}
			for _, v := range vecs {
				anchors = append(anchors, Anchor{AtomIndex: idx, Vector: v, Role: def.Role, TypeName: def.Name})
			}
		}
	}
	sort.SliceStable(anchors, func(i, j int) bool { return anchors[i].AtomIndex < anchors[j].AtomIndex })
	return anchors, skipped, nil
}

//vectorsFor gathers the neighbor positions of atom idx (two bonds deep,
//hydrogens included) and computes its anchor vectors.
func vectorsFor(c hydrate.SiteContainer, idx int, def TypeDefinition) ([]*v3.Matrix, error) {
	levels, err := c.Neighbors(idx, 2, true)
	if err != nil {
		return nil, err
	}
	neigh := make([][]*v3.Matrix, len(levels))
	for d, level := range levels {
		neigh[d] = make([]*v3.Matrix, len(level))
		for k, i := range level {
			neigh[d][k] = c.Coord(i)
		}
	}
	return Vectors(c.Coord(idx), def.Hyb, def.NWater, neigh, def.HBLength)
}
