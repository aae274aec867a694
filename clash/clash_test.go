package clash

import (
	"testing"

	v3 "github.com/gohydrate/gohydrate/v3"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestIsClash(Te *testing.T) {
	ref, err := v3.NewMatrix([]float64{
		0, 0, 0,
		3, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	probe := v3.Vec(1, 0, 0) //at 1.0 from the first reference point
	if !IsClash(probe, ref, 1.5) {
		Te.Error("point inside the exclusion radius not flagged")
	}
	if IsClash(probe, ref, 0.5) {
		Te.Error("point outside the exclusion radius flagged")
	}
	//the boundary itself is allowed
	if IsClash(probe, ref, 1.0) {
		Te.Error("point exactly at the exclusion radius flagged")
	}
}

func TestClosest(Te *testing.T) {
	ref, err := v3.NewMatrix([]float64{
		0, 0, 0,
		3, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	test, err := v3.NewMatrix([]float64{
		10, 10, 10,
		2.2, 0, 0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	if d := Closest(test, ref); !scalar.EqualWithinAbs(d, 0.8, 1e-9) {
		Te.Errorf("closest distance %f, want 0.8", d)
	}
}
