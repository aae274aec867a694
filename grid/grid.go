/*
 * Copyright 2024 The goHydrate developers
 *
 * This library is free software; you can redistribute it and/or
 * modify it under the terms of the GNU Lesser General Public
 * License as published by the Free Software Foundation; either
 * version 2.1 of the License, or (at your option) any later version.
 *
 * This library is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * Lesser General Public License for more details.
 */

//Package grid scores positions against precomputed affinity maps in the
//AutoGrid text format, one map per atom type.
package grid

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	hydrate "github.com/gohydrate/gohydrate"
	v3 "github.com/gohydrate/gohydrate/v3"
)

//Penalty is the score of a position no map can vouch for: outside the
//box, or of an atom type with no loaded map. It is large enough to sink
//any candidate in a best-of selection.
const Penalty = 1000.0

//Grid evaluates the interaction energy of one site of a given atom type at
//a position.
type Grid interface {
	Lookup(xyz *v3.Matrix, atomType string) float64
}

//A Map is a set of affinity grids sharing one box, keyed by atom type.
//Lookups interpolate trilinearly between the eight surrounding grid
//points.
type Map struct {
	spacing float64
	npts    [3]int //grid intervals per axis; points are npts+1
	center  [3]float64
	origin  [3]float64
	values  map[string][]float64
}

//NewMap returns an empty map set. The box is fixed by the first grid
//added to it.
func NewMap() *Map {
	return &Map{values: make(map[string][]float64)}
}

//Types returns the atom types with a loaded grid.
func (M *Map) Types() []string {
	ret := make([]string, 0, len(M.values))
	for t := range M.values {
		ret = append(ret, t)
	}
	return ret
}

//Add parses one AutoGrid map from r and registers it under the given atom
//type. Every grid added after the first must share its spacing, elements
//and center.
func (M *Map) Add(atomType string, r io.Reader) error {
	var spacing float64
	var npts [3]int
	var center [3]float64
	data := make([]float64, 0, 1024)
	scanner := bufio.NewScanner(r)
	inHeader := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if inHeader {
			fields := strings.Fields(line)
			var err error
			switch fields[0] {
			case "GRID_PARAMETER_FILE", "GRID_DATA_FILE", "MACROMOLECULE":
				continue
			case "SPACING":
				spacing, err = headerFloats(fields, 1)
			case "NELEMENTS":
				for i := 0; i < 3 && err == nil; i++ {
					var f float64
					f, err = headerFloats(fields, i+1)
					npts[i] = int(f)
				}
			case "CENTER":
				for i := 0; i < 3 && err == nil; i++ {
					center[i], err = headerFloats(fields, i+1)
				}
				inHeader = false
			default:
				return Error{message: fmt.Sprintf("hydrate/grid: unexpected header line %q", line), deco: []string{"Add"}}
			}
			if err != nil {
				return errDecorate(err, "Add")
			}
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return Error{message: fmt.Sprintf("hydrate/grid: bad grid value %q: %v", line, err), deco: []string{"Add"}}
		}
		data = append(data, v)
	}
	if err := scanner.Err(); err != nil {
		return errDecorate(Error{message: "hydrate/grid: " + err.Error()}, "Add")
	}
	if inHeader {
		return Error{message: "hydrate/grid: truncated map header", deco: []string{"Add"}}
	}
	want := (npts[0] + 1) * (npts[1] + 1) * (npts[2] + 1)
	if len(data) != want {
		return Error{message: fmt.Sprintf("hydrate/grid: map holds %d values, header promises %d", len(data), want), deco: []string{"Add"}}
	}
	if len(M.values) == 0 {
		M.spacing = spacing
		M.npts = npts
		M.center = center
		for i := 0; i < 3; i++ {
			M.origin[i] = center[i] - float64(npts[i])*spacing/2
		}
	} else if spacing != M.spacing || npts != M.npts || center != M.center {
		return Error{message: fmt.Sprintf("hydrate/grid: %s map box does not match the set", atomType), deco: []string{"Add"}}
	}
	M.values[atomType] = data
	return nil
}

//AddFile reads the map at path, transparently decompressing .gz and .zst
//files, and registers it under the given atom type.
func (M *Map) AddFile(atomType, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errDecorate(Error{message: "hydrate/grid: " + err.Error()}, "AddFile")
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return errDecorate(Error{message: "hydrate/grid: " + err.Error()}, "AddFile")
		}
		defer dec.Close()
		r = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errDecorate(Error{message: "hydrate/grid: " + err.Error()}, "AddFile")
		}
		defer gz.Close()
		r = gz
	}
	return M.Add(atomType, r)
}

//Lookup returns the trilinearly interpolated energy of an atomType site at
//xyz, or Penalty when the position leaves the box or no grid is loaded for
//the type.
func (M *Map) Lookup(xyz *v3.Matrix, atomType string) float64 {
	data, ok := M.values[atomType]
	if !ok {
		return Penalty
	}
	var u [3]float64
	var i0 [3]int
	for d := 0; d < 3; d++ {
		g := (xyz.At(0, d) - M.origin[d]) / M.spacing
		if g < 0 || g > float64(M.npts[d]) {
			return Penalty
		}
		i0[d] = int(g)
		if i0[d] == M.npts[d] { //exactly on the upper face
			i0[d]--
		}
		u[d] = g - float64(i0[d])
	}
	e := 0.0
	for c := 0; c < 8; c++ {
		w := 1.0
		var idx [3]int
		for d := 0; d < 3; d++ {
			if c&(1<<d) != 0 {
				idx[d] = i0[d] + 1
				w *= u[d]
			} else {
				idx[d] = i0[d]
				w *= 1 - u[d]
			}
		}
		e += w * data[M.index(idx)]
	}
	return e
}

//index maps grid point coordinates to the flat x-fastest AutoGrid layout.
func (M *Map) index(idx [3]int) int {
	return idx[0] + (M.npts[0]+1)*(idx[1]+(M.npts[1]+1)*idx[2])
}

//Best combines several grids: a lookup returns the lowest energy any
//member reports.
type Best []Grid

func (B Best) Lookup(xyz *v3.Matrix, atomType string) float64 {
	e := Penalty
	for _, g := range B {
		if v := g.Lookup(xyz, atomType); v < e {
			e = v
		}
	}
	return e
}

func headerFloats(fields []string, i int) (float64, error) {
	if i >= len(fields) {
		return 0, Error{message: fmt.Sprintf("hydrate/grid: header line %q too short", strings.Join(fields, " "))}
	}
	v, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return 0, Error{message: fmt.Sprintf("hydrate/grid: bad header field %q: %v", fields[i], err)}
	}
	return v, nil
}

//Errors

//Error is the grid package error type. It implements the goHydrate Error
//interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(hydrate.Error); ok {
		e.Decorate(caller)
		return e
	}
	return err
}
