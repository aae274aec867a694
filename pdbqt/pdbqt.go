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

//Package pdbqt reads receptor structures and writes hydration shells in
//the AutoDock PDBQT format: PDB fixed columns plus a partial charge in
//columns 71-76 and the AutoDock atom type in columns 78-79.
package pdbqt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	hydrate "github.com/gohydrate/gohydrate"
	v3 "github.com/gohydrate/gohydrate/v3"
	"github.com/gohydrate/gohydrate/water"
)

//element maps the AutoDock atom types to element symbols. Aromatic carbon
//is "A"; the polar variants keep the element of the plain type.
var element = map[string]string{
	"A": "C", "C": "C",
	"H": "H", "HD": "H", "HS": "H",
	"N": "N", "NA": "N", "NS": "N",
	"O": "O", "OA": "O", "OS": "O", "OW": "O",
	"S": "S", "SA": "S",
	"P": "P", "F": "F", "I": "I",
	"CL": "Cl", "Cl": "Cl", "BR": "Br", "Br": "Br",
	"MG": "Mg", "Mg": "Mg", "MN": "Mn", "Mn": "Mn",
	"ZN": "Zn", "Zn": "Zn", "CA": "Ca", "FE": "Fe", "Fe": "Fe",
}

var atomicNumber = map[string]int{
	"H": 1, "C": 6, "N": 7, "O": 8, "F": 9, "Mg": 12, "P": 15, "S": 16,
	"Cl": 17, "Ca": 20, "Mn": 25, "Fe": 26, "Zn": 30, "Br": 35, "I": 53,
}

//Read parses the ATOM and HETATM records of a PDBQT stream into a
//molecule. Bonds are not part of the format; run hydrate.AssignBonds on
//the result before anchor discovery.
func Read(r io.Reader) (*hydrate.Molecule, error) {
	var atoms []*hydrate.Atom
	var coords []float64
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		//single-character atom types may end the record at column 78
		if len(line) < 78 {
			return nil, Error{message: fmt.Sprintf("hydrate/pdbqt: line %d too short for a PDBQT record", lineno), deco: []string{"Read"}}
		}
		var xyz [3]float64
		for i := range xyz {
			f, err := strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
			if err != nil {
				return nil, Error{message: fmt.Sprintf("hydrate/pdbqt: line %d: bad coordinate: %v", lineno, err), deco: []string{"Read"}}
			}
			xyz[i] = f
		}
		charge, err := strconv.ParseFloat(strings.TrimSpace(line[70:76]), 64)
		if err != nil {
			return nil, Error{message: fmt.Sprintf("hydrate/pdbqt: line %d: bad partial charge: %v", lineno, err), deco: []string{"Read"}}
		}
		typeEnd := 79
		if len(line) < typeEnd {
			typeEnd = len(line)
		}
		atomType := strings.TrimSpace(line[77:typeEnd])
		symbol, ok := element[atomType]
		if !ok {
			symbol = atomType
		}
		atoms = append(atoms, &hydrate.Atom{
			Name:   strings.TrimSpace(line[12:16]),
			Type:   atomType,
			Symbol: symbol,
			Number: atomicNumber[symbol],
			Charge: charge,
		})
		coords = append(coords, xyz[0], xyz[1], xyz[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{message: "hydrate/pdbqt: " + err.Error(), deco: []string{"Read"}}
	}
	if len(atoms) == 0 {
		return nil, Error{message: "hydrate/pdbqt: no ATOM or HETATM records found", deco: []string{"Read"}}
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	mol, err := hydrate.NewMolecule(atoms, m, nil)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return mol, nil
}

//ReadFile parses the PDBQT file at path.
func ReadFile(path string) (*hydrate.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{message: "hydrate/pdbqt: " + err.Error(), deco: []string{"ReadFile"}}
	}
	defer f.Close()
	return Read(f)
}

//WriteShells writes the hydration shells as one PDBQT model: each water is
//an HOH residue on chain W with sites named O, H1, H2, L1 and L2,
//carrying the TIP5P partial charges.
func WriteShells(w io.Writer, shells [][]*water.Water) error {
	bw := bufio.NewWriter(w)
	serial, resid := 1, 1
	for s, shell := range shells {
		fmt.Fprintf(bw, "REMARK  hydration shell %d: %d waters\n", s+1, len(shell))
		for _, wat := range shell {
			hs, lps := 0, 0
			for i := 0; i < wat.Len(); i++ {
				var name string
				switch wat.SiteType(i) {
				case water.HydrogenType:
					hs++
					name = fmt.Sprintf("H%d", hs)
				case water.LonePairType:
					lps++
					name = fmt.Sprintf("L%d", lps)
				default:
					name = "O"
				}
				xyz := wat.Coord(i)
				_, err := fmt.Fprintf(bw, "ATOM  %5d %-4s %3s %s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f    %6.3f %-2s\n",
					serial, name, "HOH", "W", resid,
					xyz.At(0, 0), xyz.At(0, 1), xyz.At(0, 2),
					1.00, 0.00, wat.PartialCharge(i), wat.SiteType(i))
				if err != nil {
					return errDecorate(Error{message: "hydrate/pdbqt: " + err.Error()}, "WriteShells")
				}
				serial++
			}
			resid++
		}
	}
	fmt.Fprintln(bw, "TER")
	if err := bw.Flush(); err != nil {
		return errDecorate(Error{message: "hydrate/pdbqt: " + err.Error()}, "WriteShells")
	}
	return nil
}

//WriteShellsFile writes the hydration shells to the file at path.
func WriteShellsFile(path string, shells [][]*water.Water) error {
	f, err := os.Create(path)
	if err != nil {
		return Error{message: "hydrate/pdbqt: " + err.Error(), deco: []string{"WriteShellsFile"}}
	}
	defer f.Close()
	return WriteShells(f, shells)
}

//Errors

//Error is the pdbqt package error type. It implements the goHydrate Error
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
