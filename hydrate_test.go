package hydrate

import (
	"math"
	"testing"

	v3 "github.com/gohydrate/gohydrate/v3"
	"gonum.org/v1/gonum/floats/scalar"
)

//an ethanol-like fragment with idealized distances
func testMolecule(Te *testing.T) *Molecule {
	atoms := []*Atom{
		{Name: "C1", Type: "C", Symbol: "C", Number: 6},
		{Name: "C2", Type: "C", Symbol: "C", Number: 6},
		{Name: "OG", Type: "OA", Symbol: "O", Number: 8},
		{Name: "HO", Type: "HD", Symbol: "H", Number: 1},
		{Name: "H1", Type: "H", Symbol: "H", Number: 1},
	}
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1.52, 0, 0,
		2.3, 1.1, 0,
		3.0, 1.7, 0,
		-1.09, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := NewMolecule(atoms, coords, nil)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestAssignBonds(Te *testing.T) {
	mol := testMolecule(Te)
	if err := AssignBonds(mol); err != nil {
		Te.Fatal(err)
	}
	want := map[[2]int]bool{
		{0, 1}: true, //C1-C2
		{1, 2}: true, //C2-O
		{2, 3}: true, //O-HO
		{0, 4}: true, //C1-H1
	}
	got := mol.Bonds()
	if len(got) != len(want) {
		Te.Fatalf("want %d bonds, got %v", len(want), got)
	}
	for _, b := range got {
		if !want[b] {
			Te.Errorf("unexpected bond %v", b)
		}
	}
}

func TestAssignBondsSkipsOverlaps(Te *testing.T) {
	atoms := []*Atom{
		{Symbol: "C", Number: 6},
		{Symbol: "C", Number: 6},
	}
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,
		0.3, 0, 0, //closer than any covalent bond
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := NewMolecule(atoms, coords, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(mol); err != nil {
		Te.Fatal(err)
	}
	if len(mol.Bonds()) != 0 {
		Te.Errorf("overlapping atoms bonded: %v", mol.Bonds())
	}
}

func TestAssignBondsUnknownElement(Te *testing.T) {
	atoms := []*Atom{{Symbol: "Xx"}}
	coords, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := NewMolecule(atoms, coords, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := AssignBonds(mol); err == nil {
		Te.Error("element without a covalent radius accepted")
	}
}

func TestMoleculeNeighbors(Te *testing.T) {
	mol := testMolecule(Te)
	if err := AssignBonds(mol); err != nil {
		Te.Fatal(err)
	}
	levels, err := mol.Neighbors(2, 2, true)
	if err != nil {
		Te.Fatal(err)
	}
	//from the hydroxyl oxygen: the carbon before its own hydrogen, then
	//the chain carbon
	if len(levels) != 3 || levels[1][0] != 1 || levels[1][1] != 3 || levels[2][0] != 0 {
		Te.Errorf("oxygen traversal: %v", levels)
	}
	levels, err = mol.Neighbors(2, 2, false)
	if err != nil {
		Te.Fatal(err)
	}
	if len(levels[1]) != 1 || levels[1][0] != 1 {
		Te.Errorf("heavy-only traversal: %v", levels)
	}
}

func TestMoleculeClone(Te *testing.T) {
	mol := testMolecule(Te)
	if err := AssignBonds(mol); err != nil {
		Te.Fatal(err)
	}
	dup := mol.Clone()
	mol.Atom(0).Charge = 1.0
	mol.Coords().Set(0, 0, 99)
	if dup.Atom(0).Charge != 0 {
		Te.Error("clone shares atoms with the original")
	}
	if dup.Coords().At(0, 0) == 99 {
		Te.Error("clone shares coordinates with the original")
	}
	if len(dup.Bonds()) != len(mol.Bonds()) {
		Te.Error("clone lost bonds")
	}
}

func TestNewMoleculeRejects(Te *testing.T) {
	coords, err := v3.NewMatrix([]float64{0, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := NewMolecule(nil, coords, nil); err == nil {
		Te.Error("nil atom list accepted")
	}
	if _, err := NewMolecule([]*Atom{{}, {}}, coords, nil); err == nil {
		Te.Error("atom/coordinate length mismatch accepted")
	}
}

func TestAngleConversion(Te *testing.T) {
	if !scalar.EqualWithinAbs(Deg2Rad(180), math.Pi, 1e-12) {
		Te.Errorf("Deg2Rad(180) = %f", Deg2Rad(180))
	}
	if !scalar.EqualWithinAbs(Rad2Deg(Deg2Rad(104.52)), 104.52, 1e-9) {
		Te.Errorf("round trip lost precision: %f", Rad2Deg(Deg2Rad(104.52)))
	}
}
