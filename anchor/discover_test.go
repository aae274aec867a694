package anchor

import (
	"testing"

	hydrate "github.com/gohydrate/gohydrate"
	v3 "github.com/gohydrate/gohydrate/v3"
	"gonum.org/v1/gonum/floats/scalar"
)

//typeMatcher matches atoms whose site type label equals the pattern.
type typeMatcher struct{}

func (typeMatcher) Match(pattern string, c hydrate.SiteContainer) [][]int {
	var ret [][]int
	for i := 0; i < c.Len(); i++ {
		if c.SiteType(i) == pattern {
			ret = append(ret, []int{i})
		}
	}
	return ret
}

//methanolamine-ish fragment: N-C-O-H with the hydroxyl able to accept two
//waters and donate one.
func testFragment(Te *testing.T) *hydrate.Molecule {
	atoms := []*hydrate.Atom{
		{Name: "CB", Type: "C", Symbol: "C", Number: 6},
		{Name: "OG", Type: "OA", Symbol: "O", Number: 8},
		{Name: "HG", Type: "HD", Symbol: "H", Number: 1},
		{Name: "N", Type: "NX", Symbol: "N", Number: 7},
	}
	coords, err := v3.NewMatrix([]float64{
		-1.4, 0, 0,
		0, 0, 0,
		0.3, 0.9, 0,
		-2.8, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := hydrate.NewMolecule(atoms, coords, [][2]int{{0, 1}, {1, 2}, {0, 3}})
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func testDefinitions() []TypeDefinition {
	//deliberately scrambled: Discover must order by priority, not by
	//position in the slice.
	return []TypeDefinition{
		{Name: "OW2", Priority: 5, Role: Acceptor, Hyb: Tetrahedral, NWater: 1, HBLength: 3.5, Pattern: "OA"},
		{Name: "HD", Priority: 30, Role: Donor, Hyb: Linear, NWater: 1, HBLength: 2.0, Pattern: "HD"},
		{Name: "C", Priority: 10, Role: None, Pattern: "C"},
		{Name: "CA2", Priority: 5, Role: Acceptor, Hyb: Planar, NWater: 1, HBLength: 3.0, Pattern: "C"},
		{Name: "OA", Priority: 20, Role: Acceptor, Hyb: Tetrahedral, NWater: 2, HBLength: 1.9, Pattern: "OA"},
		{Name: "NX", Priority: 40, Role: Acceptor, Hyb: Tetrahedral, NWater: 1, HBLength: 1.9, Pattern: "NX"},
	}
}

func TestDiscover(Te *testing.T) {
	mol := testFragment(Te)
	anchors, skipped, err := Discover(mol, testDefinitions(), typeMatcher{})
	if err != nil {
		Te.Fatal(err)
	}
	if len(anchors) != 3 {
		Te.Fatalf("want 3 anchors (2 acceptor + 1 donor), got %d", len(anchors))
	}
	//grouped by atom index, ascending
	for i := 1; i < len(anchors); i++ {
		if anchors[i].AtomIndex < anchors[i-1].AtomIndex {
			Te.Fatalf("anchors not sorted by atom index: %d after %d", anchors[i].AtomIndex, anchors[i-1].AtomIndex)
		}
	}
	for _, a := range anchors[:2] {
		if a.AtomIndex != 1 || a.Role != Acceptor || a.TypeName != "OA" {
			Te.Errorf("hydroxyl oxygen anchor: got atom %d type %q role %v", a.AtomIndex, a.TypeName, a.Role)
		}
		if !scalar.EqualWithinAbs(v3.Distance(mol.Coord(1), a.Vector), 1.9, 1e-9) {
			Te.Errorf("acceptor vector at %f, want 1.9", v3.Distance(mol.Coord(1), a.Vector))
		}
	}
	hd := anchors[2]
	if hd.AtomIndex != 2 || hd.Role != Donor || hd.TypeName != "HD" {
		Te.Errorf("hydroxyl hydrogen anchor: got atom %d type %q role %v", hd.AtomIndex, hd.TypeName, hd.Role)
	}
	if !scalar.EqualWithinAbs(v3.Distance(mol.Coord(2), hd.Vector), 2.0, 1e-9) {
		Te.Errorf("donor vector at %f, want 2.0", v3.Distance(mol.Coord(2), hd.Vector))
	}
	//the sp3 nitrogen with a single bonded neighbor cannot complete a
	//tetrahedron, so atom 3 must land in the skipped list and nowhere else
	if len(skipped) != 1 {
		Te.Fatalf("want 1 skipped atom, got %d (%v)", len(skipped), skipped)
	}
	if skipped[0].AtomIndex != 3 || !IsInsufficientGeometry(skipped[0].Err) {
		Te.Errorf("skipped entry: got atom %d, err %v", skipped[0].AtomIndex, skipped[0].Err)
	}
}

//An atom claimed by a higher-priority definition is invisible to every
//later one, including when the claiming definition has no role.
func TestDiscoverFirstMatchWins(Te *testing.T) {
	mol := testFragment(Te)
	anchors, _, err := Discover(mol, testDefinitions(), typeMatcher{})
	if err != nil {
		Te.Fatal(err)
	}
	for _, a := range anchors {
		if a.TypeName == "OW2" {
			Te.Error("hydroxyl oxygen claimed by the low-priority definition")
		}
		if a.AtomIndex == 0 {
			Te.Error("carbon produced an anchor despite being claimed by a role-less definition")
		}
	}
}

func TestDiscoverNeedsDefinitions(Te *testing.T) {
	mol := testFragment(Te)
	anchors, skipped, err := Discover(mol, nil, typeMatcher{})
	if err != nil {
		Te.Fatal(err)
	}
	if len(anchors) != 0 || len(skipped) != 0 {
		Te.Errorf("empty definition set: got %d anchors, %d skipped", len(anchors), len(skipped))
	}
	if _, _, err := Discover(mol, testDefinitions(), nil); err == nil {
		Te.Error("nil matcher accepted")
	}
}
