package field

import (
	"strings"
	"testing"

	hydrate "github.com/gohydrate/gohydrate"
	"github.com/gohydrate/gohydrate/anchor"
	v3 "github.com/gohydrate/gohydrate/v3"
)

const table = `
#name  pattern  role      hyb  n_water  hb_length  priority
HD     HD       donor     1    1        1.90       40
OA     OA|OS    acceptor  3    2        1.90       30  # ether and hydroxyl oxygens
C      C|A      none      0    0        0          1
`

func TestRead(Te *testing.T) {
	defs, err := Read(strings.NewReader(table))
	if err != nil {
		Te.Fatal(err)
	}
	if len(defs) != 3 {
		Te.Fatalf("want 3 definitions, got %d", len(defs))
	}
	oa := defs[1]
	if oa.Name != "OA" || oa.Role != anchor.Acceptor || oa.Hyb != anchor.Tetrahedral ||
		oa.NWater != 2 || oa.HBLength != 1.90 || oa.Priority != 30 || oa.Pattern != "OA|OS" {
		Te.Errorf("OA definition parsed as %+v", oa)
	}
	if defs[2].Role != anchor.None {
		Te.Errorf("C definition parsed as %+v", defs[2])
	}
}

func TestReadRejects(Te *testing.T) {
	bad := []struct{ name, table string }{
		{"column count", "HD HD donor 1 1 1.90\n"},
		{"role", "HD HD giver 1 1 1.90 40\n"},
		{"hybridization", "HD HD donor 5 1 1.90 40\n"},
		{"contact count", "HD HD donor 1 4 1.90 40\n"},
		{"bond length", "HD HD donor 1 1 -1.0 40\n"},
		{"duplicate name", "HD HD donor 1 1 1.9 40\nHD HD donor 1 1 1.9 30\n"},
		{"duplicate priority", "HD HD donor 1 1 1.9 40\nOA OA acceptor 3 2 1.9 40\n"},
	}
	for _, c := range bad {
		if _, err := Read(strings.NewReader(c.table)); err == nil {
			Te.Errorf("table with bad %s accepted", c.name)
		}
	}
}

func TestDefaultValid(Te *testing.T) {
	if err := Validate(Default()); err != nil {
		Te.Error(err)
	}
}

func TestLabelMatcher(Te *testing.T) {
	atoms := []*hydrate.Atom{
		{Type: "C", Number: 6},
		{Type: "OA", Number: 8},
		{Type: "OS", Number: 8},
		{Type: "HD", Number: 1},
	}
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1.4, 0, 0,
		2.8, 0, 0,
		4.2, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := hydrate.NewMolecule(atoms, coords, nil)
	if err != nil {
		Te.Fatal(err)
	}
	m := LabelMatcher{}
	got := m.Match("OA|OS", mol)
	if len(got) != 2 || got[0][0] != 1 || got[1][0] != 2 {
		Te.Errorf("pattern OA|OS matched %v", got)
	}
	if got := m.Match("NA", mol); got != nil {
		Te.Errorf("pattern NA matched %v", got)
	}
}
