package pdbqt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gohydrate/gohydrate/anchor"
	v3 "github.com/gohydrate/gohydrate/v3"
	"github.com/gohydrate/gohydrate/water"
	"gonum.org/v1/gonum/floats/scalar"
)

//a serine hydroxyl fragment, as prepared by the usual receptor pipeline
const receptor = `REMARK  test fragment
ATOM      1  CB  SER A   1       0.000   0.000   0.000  1.00  0.00     0.180 C
ATOM      2  OG  SER A   1       1.400   0.000   0.000  1.00  0.00    -0.393 OA
ATOM      3  HG  SER A   1       1.700   0.900   0.000  1.00  0.00     0.210 HD
TER
`

func TestRead(Te *testing.T) {
	mol, err := Read(strings.NewReader(receptor))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 {
		Te.Fatalf("want 3 atoms, got %d", mol.Len())
	}
	//the CB record has a one-character type and ends at column 78
	if cb := mol.Atom(0); cb.Type != "C" || cb.Symbol != "C" || cb.Number != 6 {
		Te.Errorf("CB parsed as %+v", cb)
	}
	og := mol.Atom(1)
	if og.Name != "OG" || og.Type != "OA" || og.Symbol != "O" || og.Number != 8 {
		Te.Errorf("OG parsed as %+v", og)
	}
	if !scalar.EqualWithinAbs(og.Charge, -0.393, 1e-9) {
		Te.Errorf("OG charge %f, want -0.393", og.Charge)
	}
	if v3.Distance(mol.Coord(1), v3.Vec(1.4, 0, 0)) > 1e-9 {
		Te.Errorf("OG at %v", mol.Coord(1))
	}
	if mol.AtomicNumber(2) != 1 {
		Te.Errorf("HG atomic number %d, want 1", mol.AtomicNumber(2))
	}
}

func TestReadRejects(Te *testing.T) {
	if _, err := Read(strings.NewReader("REMARK nothing here\n")); err == nil {
		Te.Error("stream without atoms accepted")
	}
	if _, err := Read(strings.NewReader("ATOM      1  CB  SER A   1\n")); err == nil {
		Te.Error("truncated record accepted")
	}
}

func TestWriteShellsRoundTrip(Te *testing.T) {
	w1, err := water.New(v3.Vec(0, 0, 0), v3.Vec(2.8, 0, 0), anchor.Acceptor)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w1.BuildTIP5P(); err != nil {
		Te.Fatal(err)
	}
	w2, err := water.New(v3.Vec(4, 4, 4), v3.Vec(4, 4, 6.8), anchor.Donor)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w2.BuildTIP5P(); err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteShells(&buf, [][]*water.Water{{w1}, {w2}}); err != nil {
		Te.Fatal(err)
	}
	mol, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 10 {
		Te.Fatalf("want 10 sites back, got %d", mol.Len())
	}
	//%8.3f rounds each axis by up to 5e-4, ~8.7e-4 over three axes
	for i := 0; i < 5; i++ {
		if v3.Distance(mol.Coord(i), w1.Coord(i)) > 1e-3 {
			Te.Errorf("site %d drifted: %v vs %v", i, mol.Coord(i), w1.Coord(i))
		}
	}
	qtot := 0.0
	for i := 0; i < mol.Len(); i++ {
		qtot += mol.Atom(i).Charge
	}
	if !scalar.EqualWithinAbs(qtot, 0, 1e-9) {
		Te.Errorf("net charge %f, want 0", qtot)
	}
	//two hydrogens and two lone pairs per water, names preserved
	names := map[string]int{}
	for i := 0; i < mol.Len(); i++ {
		names[mol.Atom(i).Name]++
	}
	for _, n := range []string{"O", "H1", "H2", "L1", "L2"} {
		if names[n] != 2 {
			Te.Errorf("site name %s appears %d times, want 2", n, names[n])
		}
	}
}
