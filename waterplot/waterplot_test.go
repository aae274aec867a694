package waterplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gohydrate/gohydrate/anchor"
	v3 "github.com/gohydrate/gohydrate/v3"
	"github.com/gohydrate/gohydrate/water"
)

type constScorer float64

func (s constScorer) Lookup(xyz *v3.Matrix, atomType string) float64 { return float64(s) }

func testShells(Te *testing.T) [][]*water.Water {
	var shells [][]*water.Water
	for i := 0; i < 2; i++ {
		w, err := water.New(v3.Vec(float64(4*i), 0, 0), v3.Vec(float64(4*i), 0, 2.8), anchor.Donor)
		if err != nil {
			Te.Fatal(err)
		}
		if err := w.BuildTIP5P(); err != nil {
			Te.Fatal(err)
		}
		shells = append(shells, []*water.Water{w})
	}
	return shells
}

func TestEnergies(Te *testing.T) {
	got := Energies(testShells(Te), constScorer(-0.25))
	if len(got) != 2 {
		Te.Fatalf("want 2 energies, got %d", len(got))
	}
	for _, e := range got {
		if e != -1.0 { //four satellites
			Te.Errorf("water energy %f, want -1.0", e)
		}
	}
}

func TestEnergyHistogram(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "energies.png")
	energies := []float64{-2.1, -1.9, -1.8, -0.4, -0.3, 0.2}
	if err := EnergyHistogram(energies, 4, "water energies", path); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		Te.Errorf("histogram not written: %v", err)
	}
	if err := EnergyHistogram(nil, 4, "empty", path); err == nil {
		Te.Error("empty energy set plotted")
	}
}

func TestShellSizes(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "shells.png")
	if err := ShellSizes(testShells(Te), "shell sizes", path); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		Te.Errorf("bar chart not written: %v", err)
	}
}
