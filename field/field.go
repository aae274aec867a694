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

//Package field loads the water forcefield: the table of atom type
//definitions that drives hydrogen-bond anchor discovery.
//
//The file format is a whitespace-separated table, one definition per line,
//with # comments:
//
//	#name  pattern  role      hyb  n_water  hb_length  priority
//	HD     HD       donor     1    1        1.90       40
//	OA     OA|OS    acceptor  3    2        1.90       30
//	C      C|A      none      0    0        0          1
//
//A pattern is one or more site type labels separated by |.
package field

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	hydrate "github.com/gohydrate/gohydrate"
	"github.com/gohydrate/gohydrate/anchor"
)

//Read parses a forcefield table from r and validates it.
func Read(r io.Reader) ([]anchor.TypeDefinition, error) {
	var defs []anchor.TypeDefinition
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 7 {
			return nil, Error{message: fmt.Sprintf("hydrate/field: line %d: want 7 columns, got %d", lineno, len(fields)), deco: []string{"Read"}}
		}
		def, err := parseDefinition(fields)
		if err != nil {
			return nil, errDecorate(Error{message: fmt.Sprintf("hydrate/field: line %d: %v", lineno, err)}, "Read")
		}
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{message: "hydrate/field: " + err.Error(), deco: []string{"Read"}}
	}
	if err := Validate(defs); err != nil {
		return nil, errDecorate(err, "Read")
	}
	return defs, nil
}

//ReadFile parses and validates the forcefield table at path.
func ReadFile(path string) ([]anchor.TypeDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{message: "hydrate/field: " + err.Error(), deco: []string{"ReadFile"}}
	}
	defer f.Close()
	return Read(f)
}

func parseDefinition(fields []string) (anchor.TypeDefinition, error) {
	var def anchor.TypeDefinition
	def.Name = fields[0]
	def.Pattern = fields[1]
	switch strings.ToLower(fields[2]) {
	case "donor":
		def.Role = anchor.Donor
	case "acceptor":
		def.Role = anchor.Acceptor
	case "none":
		def.Role = anchor.None
	default:
		return def, fmt.Errorf("unknown role %q", fields[2])
	}
	var err error
	if def.Hyb, err = strconv.Atoi(fields[3]); err != nil {
		return def, fmt.Errorf("bad hybridization %q", fields[3])
	}
	if def.NWater, err = strconv.Atoi(fields[4]); err != nil {
		return def, fmt.Errorf("bad water contact count %q", fields[4])
	}
	if def.HBLength, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return def, fmt.Errorf("bad hydrogen bond length %q", fields[5])
	}
	if def.Priority, err = strconv.Atoi(fields[6]); err != nil {
		return def, fmt.Errorf("bad priority %q", fields[6])
	}
	return def, nil
}

//Validate checks a definition set for the errors that would make the
//first-match-wins discovery ambiguous or the geometry construction
//impossible. In particular, two definitions may not share a priority.
func Validate(defs []anchor.TypeDefinition) error {
	names := make(map[string]bool, len(defs))
	priorities := make(map[int]string, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return Error{message: "hydrate/field: definition with an empty name", deco: []string{"Validate"}}
		}
		if names[def.Name] {
			return Error{message: fmt.Sprintf("hydrate/field: duplicate definition %q", def.Name), deco: []string{"Validate"}}
		}
		names[def.Name] = true
		if other, taken := priorities[def.Priority]; taken {
			return Error{message: fmt.Sprintf("hydrate/field: %q and %q share priority %d", other, def.Name, def.Priority), deco: []string{"Validate"}}
		}
		priorities[def.Priority] = def.Name
		if def.Role == anchor.None {
			continue
		}
		if def.Hyb < anchor.Linear || def.Hyb > anchor.Tetrahedral {
			return Error{message: fmt.Sprintf("hydrate/field: %q: hybridization %d outside 1-3", def.Name, def.Hyb), deco: []string{"Validate"}}
		}
		if def.NWater < 1 || def.NWater > 3 {
			return Error{message: fmt.Sprintf("hydrate/field: %q: %d water contacts outside 1-3", def.Name, def.NWater), deco: []string{"Validate"}}
		}
		if def.HBLength <= 0 {
			return Error{message: fmt.Sprintf("hydrate/field: %q: hydrogen bond length %f not positive", def.Name, def.HBLength), deco: []string{"Validate"}}
		}
	}
	return nil
}

//Default returns the built-in definition set: the common AutoDock polar
//types for receptors plus the water satellite types, so discovery can run
//both on a receptor and on a placed water to seed the next shell.
func Default() []anchor.TypeDefinition {
	return []anchor.TypeDefinition{
		{Name: "HD", Pattern: "HD", Role: anchor.Donor, Hyb: anchor.Linear, NWater: 1, HBLength: 1.90, Priority: 40},
		{Name: "OA", Pattern: "OA|OS", Role: anchor.Acceptor, Hyb: anchor.Tetrahedral, NWater: 2, HBLength: 1.90, Priority: 30},
		{Name: "NA", Pattern: "NA", Role: anchor.Acceptor, Hyb: anchor.Planar, NWater: 1, HBLength: 1.90, Priority: 20},
		{Name: "SA", Pattern: "SA", Role: anchor.Acceptor, Hyb: anchor.Tetrahedral, NWater: 2, HBLength: 2.50, Priority: 10},
		{Name: "Lp", Pattern: "Lp", Role: anchor.Acceptor, Hyb: anchor.Linear, NWater: 1, HBLength: 2.10, Priority: 5},
		{Name: "OW", Pattern: "OW", Role: anchor.None, Priority: 1},
	}
}

//LabelMatcher resolves patterns against site type labels: a pattern is a
//|-separated list of labels and matches every site carrying one of them.
type LabelMatcher struct{}

func (LabelMatcher) Match(pattern string, c hydrate.SiteContainer) [][]int {
	labels := strings.Split(pattern, "|")
	var ret [][]int
	for i := 0; i < c.Len(); i++ {
		t := c.SiteType(i)
		for _, l := range labels {
			if t == l {
				ret = append(ret, []int{i})
				break
			}
		}
	}
	return ret
}

//Errors

//Error is the field package error type. It implements the goHydrate Error
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
