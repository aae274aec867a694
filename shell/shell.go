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

//Package shell grows hydration shells around a receptor: it discovers the
//hydrogen-bond anchors of the current layer, places and orients a TIP5P
//water on each, and keeps the placements that score well and do not clash
//with anything already there. The waters of one shell are the anchors of
//the next.
package shell

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	hydrate "github.com/gohydrate/gohydrate"
	"github.com/gohydrate/gohydrate/anchor"
	"github.com/gohydrate/gohydrate/clash"
	v3 "github.com/gohydrate/gohydrate/v3"
	"github.com/gohydrate/gohydrate/water"
)

//boltzmann is the Boltzmann constant in kcal/mol/K, the unit of the
//affinity maps.
const boltzmann = 0.001987204

//How selects the orientation of each placed water among the sampled
//rotations about its hydrogen bond axis.
type How int

const (
	//Best keeps the lowest-energy orientation.
	Best How = iota
	//Boltzmann draws an orientation with probability proportional to
	//exp(-E/kT).
	Boltzmann
)

func (h How) String() string {
	if h == Boltzmann {
		return "boltzmann"
	}
	return "best"
}

//ParseHow reads an orientation-selection name, as given on a command line.
func ParseHow(s string) (How, error) {
	switch s {
	case "best":
		return Best, nil
	case "boltzmann":
		return Boltzmann, nil
	}
	return Best, Error{message: fmt.Sprintf("hydrate/shell: unknown orientation selection %q", s), deco: []string{"ParseHow"}}
}

type Options struct {
	cpus         int
	shells       int
	how          How
	temperature  float64
	exclusion    float64
	orientations int
	cutoff       float64
	seed         int64
	logger       *zap.Logger
}

//Returns an Options with the default options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.shells = 3
	ret.how = Boltzmann
	ret.temperature = 300
	ret.exclusion = 2.5
	ret.orientations = 36
	ret.cutoff = 0
	ret.seed = 1
	ret.logger = zap.NewNop()
	return ret
}

//Returns the number of goroutines used to build and score candidate
//waters, and sets it, if a valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

//Returns the number of hydration shells to grow and sets it, if a valid
//value is given.
func (r *Options) Shells(shells ...int) int {
	ret := r.shells
	if len(shells) > 0 && shells[0] > 0 {
		r.shells = shells[0]
	}
	return ret
}

//Returns how the orientation of each water is selected and sets it, if a
//value is given.
func (r *Options) How(how ...How) How {
	ret := r.how
	if len(how) > 0 {
		r.how = how[0]
	}
	return ret
}

//Returns the temperature, in K, of the Boltzmann orientation sampling, and
//sets it, if a valid value is given.
func (r *Options) Temperature(t ...float64) float64 {
	ret := r.temperature
	if len(t) > 0 && t[0] > 0 {
		r.temperature = t[0]
	}
	return ret
}

//Returns the exclusion radius, in A: a water oxygen closer than this to
//the receptor or to another placed oxygen is discarded. Sets it, if a
//valid value is given.
func (r *Options) ExclusionRadius(rad ...float64) float64 {
	ret := r.exclusion
	if len(rad) > 0 && rad[0] > 0 {
		r.exclusion = rad[0]
	}
	return ret
}

//Returns the number of orientations sampled about each hydrogen bond axis
//and sets it, if a valid value is given.
func (r *Options) Orientations(n ...int) int {
	ret := r.orientations
	if len(n) > 0 && n[0] > 0 {
		r.orientations = n[0]
	}
	return ret
}

//Returns the acceptance cutoff, in kcal/mol: a water is kept only if its
//selected orientation scores below it. Sets it, if a value is given.
func (r *Options) EnergyCutoff(e ...float64) float64 {
	ret := r.cutoff
	if len(e) > 0 {
		r.cutoff = e[0]
	}
	return ret
}

//Returns the seed of the Boltzmann sampling and sets it, if a value is
//given. The same seed always grows the same shells.
func (r *Options) Seed(seed ...int64) int64 {
	ret := r.seed
	if len(seed) > 0 {
		r.seed = seed[0]
	}
	return ret
}

//Returns the logger and sets it, if one is given. The default discards
//everything.
func (r *Options) Logger(l ...*zap.Logger) *zap.Logger {
	ret := r.logger
	if len(l) > 0 && l[0] != nil {
		r.logger = l[0]
	}
	return ret
}

//candidate is one anchor with its built water, before acceptance.
type candidate struct {
	anchor layerAnchor
	wat    *water.Water
	energy float64
	ok     bool
}

//Hydrate grows up to Shells hydration shells around the receptor, scoring
//the waters against s. The receptor must carry bonds (hydrate.AssignBonds)
//for the anchor discovery to traverse. Growth stops early when a shell
//comes out empty. Waters whose anchor geometry cannot be computed are
//skipped, in the same way discovery skips unbuildable receptor anchors.
func Hydrate(rec hydrate.SiteContainer, s water.Scorer, defs []anchor.TypeDefinition, m anchor.Matcher, options ...*Options) ([][]*water.Water, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	log := o.logger

	//the receptor is forever off-limits for water oxygens
	occupied := containerCoords(rec)
	var shells [][]*water.Water
	containers := []hydrate.SiteContainer{rec}
	for i := 0; i < o.shells; i++ {
		anchors, skipped, err := discoverLayer(containers, defs, m)
		if err != nil {
			return shells, errDecorate(err, "Hydrate")
		}
		log.Info("layer discovered",
			zap.Int("shell", i+1),
			zap.Int("anchors", len(anchors)),
			zap.Int("skipped", len(skipped)))
		for _, sk := range skipped {
			log.Debug("anchor skipped",
				zap.Int("atom", sk.AtomIndex),
				zap.String("type", sk.TypeName),
				zap.Error(sk.Err))
		}
		placed, err := placeShell(anchors, occupied, s, o, int64(i))
		if err != nil {
			return shells, errDecorate(err, "Hydrate")
		}
		log.Info("shell placed", zap.Int("shell", i+1), zap.Int("waters", len(placed)))
		if len(placed) == 0 {
			break
		}
		shells = append(shells, placed)
		containers = make([]hydrate.SiteContainer, len(placed))
		for j, w := range placed {
			containers[j] = w
		}
		for _, w := range placed {
			occupied = append(occupied, w.O())
		}
	}
	return shells, nil
}

//layerAnchor is an anchor plus the position of its parent atom, which a
//water needs to orient itself.
type layerAnchor struct {
	anchor.Anchor
	parentXYZ *v3.Matrix
}

//discoverLayer runs anchor discovery over every container of the current
//layer. On a placed water, the site already bonded to the parent anchor is
//not available for another hydrogen bond.
func discoverLayer(containers []hydrate.SiteContainer, defs []anchor.TypeDefinition, m anchor.Matcher) ([]layerAnchor, []anchor.Skipped, error) {
	var ret []layerAnchor
	var allSkipped []anchor.Skipped
	for _, c := range containers {
		anchors, skipped, err := anchor.Discover(c, defs, m)
		if err != nil {
			return nil, nil, err
		}
		allSkipped = append(allSkipped, skipped...)
		w, isWater := c.(*water.Water)
		for _, a := range anchors {
			if isWater && a.AtomIndex == w.OccupiedSite() {
				continue
			}
			ret = append(ret, layerAnchor{Anchor: a, parentXYZ: c.Coord(a.AtomIndex).Clone()})
		}
	}
	return ret, allSkipped, nil
}

//placeShell builds, orients and scores one candidate water per anchor in
//parallel, then accepts them greedily in discovery order, each new oxygen
//clash-tested against the receptor and every water accepted before it. A
//water sits at hydrogen-bond length from its own parent anchor atom, so
//the parent never counts as a clash.
func placeShell(anchors []layerAnchor, occupied []*v3.Matrix, s water.Scorer, o *Options, round int64) ([]*water.Water, error) {
	cands := make([]candidate, len(anchors))
	var g errgroup.Group
	g.SetLimit(o.cpus)
	for i := range anchors {
		i := i
		g.Go(func() error {
			c, err := buildCandidate(anchors[i], s, o, o.seed+round*1000003+int64(i))
			if err != nil {
				return err
			}
			cands[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errDecorate(err, "placeShell")
	}
	occ := make([]*v3.Matrix, len(occupied))
	copy(occ, occupied)
	var placed []*water.Water
	for _, c := range cands {
		if !c.ok || c.energy >= o.cutoff {
			continue
		}
		oxy := c.wat.O()
		if clashesExceptParent(oxy, occ, c.anchor.parentXYZ, o.exclusion) {
			continue
		}
		placed = append(placed, c.wat)
		occ = append(occ, oxy)
	}
	return placed, nil
}

func clashesExceptParent(oxy *v3.Matrix, occ []*v3.Matrix, parent *v3.Matrix, radius float64) bool {
	for _, p := range occ {
		if v3.Distance(p, parent) < 1e-9 {
			continue
		}
		if clash.IsClash(oxy, p, radius) {
			return true
		}
	}
	return false
}

//buildCandidate places a water at the anchor position and picks its
//orientation among evenly spaced rotations about the hydrogen bond axis.
//A water that cannot be built (degenerate geometry) comes back not-ok
//rather than as an error.
func buildCandidate(a layerAnchor, s water.Scorer, o *Options, seed int64) (candidate, error) {
	ret := candidate{anchor: a}
	w, err := water.New(a.Vector, a.parentXYZ, a.Role)
	if err != nil {
		if _, recoverable := err.(water.Error); recoverable || v3.IsDegenerate(err) {
			return ret, nil
		}
		return ret, err
	}
	if err := w.BuildTIP5P(); err != nil {
		if v3.IsDegenerate(err) {
			return ret, nil
		}
		return ret, err
	}
	step := 360.0 / float64(o.orientations)
	energies := make([]float64, o.orientations)
	best, bestE := 0, w.Energy(s)
	energies[0] = bestE
	for k := 1; k < o.orientations; k++ {
		if err := w.Rotate(step, w.OccupiedSite()); err != nil {
			return ret, err
		}
		energies[k] = w.Energy(s)
		if energies[k] < bestE {
			best, bestE = k, energies[k]
		}
	}
	pick := best
	if o.how == Boltzmann {
		pick = boltzmannChoice(energies, o.temperature, rand.New(rand.NewSource(seed)))
	}
	//the water sits at orientation (orientations-1)*step; spin it forward
	//to the picked one
	if err := w.Rotate(float64(pick+1)*step, w.OccupiedSite()); err != nil {
		return ret, err
	}
	ret.wat = w
	ret.energy = energies[pick]
	ret.ok = true
	return ret, nil
}

//boltzmannChoice draws an index with probability exp(-E/kT), normalized.
//Energies are shifted by their minimum first, so very negative values do
//not overflow.
func boltzmannChoice(energies []float64, temperature float64, rng *rand.Rand) int {
	min := energies[0]
	for _, e := range energies {
		if e < min {
			min = e
		}
	}
	kt := boltzmann * temperature
	weights := make([]float64, len(energies))
	total := 0.0
	for i, e := range energies {
		weights[i] = math.Exp(-(e - min) / kt)
		total += weights[i]
	}
	x := rng.Float64() * total
	for i, w := range weights {
		x -= w
		if x <= 0 {
			return i
		}
	}
	return len(energies) - 1
}

func containerCoords(c hydrate.SiteContainer) []*v3.Matrix {
	ret := make([]*v3.Matrix, c.Len())
	for i := range ret {
		ret[i] = c.Coord(i).Clone()
	}
	return ret
}

//Errors

//Error is the shell package error type. It implements the goHydrate Error
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
