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

//gohydrate places explicit TIP5P waters around a receptor, shell by shell,
//driven by its hydrogen-bond geometry and scored against AutoGrid affinity
//maps.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	hydrate "github.com/gohydrate/gohydrate"
	"github.com/gohydrate/gohydrate/field"
	"github.com/gohydrate/gohydrate/grid"
	"github.com/gohydrate/gohydrate/pdbqt"
	"github.com/gohydrate/gohydrate/shell"
	"github.com/gohydrate/gohydrate/waterplot"
)

type cliOptions struct {
	receptor     string
	fieldPath    string
	maps         []string
	out          string
	how          string
	shells       int
	cpus         int
	temperature  float64
	exclusion    float64
	orientations int
	cutoff       float64
	seed         int64
	histogram    string
	sizes        string
	verbose      bool
}

func main() {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "gohydrate",
		Short: "grow explicit hydration shells around a PDBQT receptor",
		Long: `gohydrate reads a receptor in PDBQT format, finds its hydrogen-bond
anchors, and grows shells of rigid TIP5P waters on them. Each water is
oriented about its hydrogen bond and scored against AutoGrid affinity
maps; waters that score badly or clash are discarded. The waters of one
shell become the anchors of the next.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	f := root.Flags()
	f.StringVarP(&opts.receptor, "receptor", "r", "", "receptor PDBQT file (required)")
	f.StringVarP(&opts.fieldPath, "field", "f", "", "water forcefield table (default: built-in)")
	f.StringArrayVarP(&opts.maps, "map", "m", nil, "affinity map as TYPE=path, repeatable (e.g. -m OW=rec.OW.map -m HD=rec.HD.map.gz)")
	f.StringVarP(&opts.out, "out", "o", "waters.pdbqt", "output PDBQT file for the placed waters")
	f.StringVar(&opts.how, "how", "boltzmann", "water orientation selection: best or boltzmann")
	f.IntVarP(&opts.shells, "shells", "n", 3, "number of hydration shells to grow")
	f.IntVarP(&opts.cpus, "cpus", "c", 0, "goroutines for candidate scoring (default: all cores)")
	f.Float64VarP(&opts.temperature, "temperature", "T", 300, "temperature of the Boltzmann sampling, in K")
	f.Float64Var(&opts.exclusion, "exclusion", 2.5, "minimum distance from a water oxygen to anything else, in A")
	f.IntVar(&opts.orientations, "orientations", 36, "rotations sampled about each hydrogen bond axis")
	f.Float64Var(&opts.cutoff, "cutoff", 0, "keep only waters scoring below this, in kcal/mol")
	f.Int64Var(&opts.seed, "seed", 1, "seed of the Boltzmann sampling")
	f.StringVar(&opts.histogram, "histogram", "", "also write a water energy histogram to this image file")
	f.StringVar(&opts.sizes, "shell-plot", "", "also write a waters-per-shell bar chart to this image file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.MarkFlagRequired("receptor")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *cliOptions) error {
	logger, err := buildLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rec, err := pdbqt.ReadFile(opts.receptor)
	if err != nil {
		return err
	}
	if err := hydrate.AssignBonds(rec); err != nil {
		return err
	}
	logger.Info("receptor loaded",
		zap.String("file", opts.receptor),
		zap.Int("atoms", rec.Len()),
		zap.Int("bonds", len(rec.Bonds())))

	defs := field.Default()
	if opts.fieldPath != "" {
		defs, err = field.ReadFile(opts.fieldPath)
		if err != nil {
			return err
		}
	}
	logger.Info("forcefield loaded", zap.Int("definitions", len(defs)))

	maps, err := loadMaps(opts.maps, logger)
	if err != nil {
		return err
	}

	how, err := shell.ParseHow(opts.how)
	if err != nil {
		return err
	}
	o := shell.DefaultOptions()
	o.Shells(opts.shells)
	o.How(how)
	o.Cpus(opts.cpus)
	o.Temperature(opts.temperature)
	o.ExclusionRadius(opts.exclusion)
	o.Orientations(opts.orientations)
	o.EnergyCutoff(opts.cutoff)
	o.Seed(opts.seed)
	o.Logger(logger)

	shells, err := shell.Hydrate(rec, maps, defs, field.LabelMatcher{}, o)
	if err != nil {
		return err
	}
	total := 0
	for _, s := range shells {
		total += len(s)
	}
	logger.Info("hydration done", zap.Int("shells", len(shells)), zap.Int("waters", total))

	if err := pdbqt.WriteShellsFile(opts.out, shells); err != nil {
		return err
	}
	logger.Info("waters written", zap.String("file", opts.out))

	if opts.histogram != "" {
		energies := waterplot.Energies(shells, maps)
		if err := waterplot.EnergyHistogram(energies, 20, "water energies", opts.histogram); err != nil {
			return err
		}
	}
	if opts.sizes != "" {
		if err := waterplot.ShellSizes(shells, "waters per shell", opts.sizes); err != nil {
			return err
		}
	}
	return nil
}

//loadMaps parses the TYPE=path map flags. With no maps given every lookup
//costs the out-of-box penalty, which is only useful for dry runs with a
//huge cutoff.
func loadMaps(specs []string, logger *zap.Logger) (grid.Grid, error) {
	m := grid.NewMap()
	for _, spec := range specs {
		atomType, path, found := strings.Cut(spec, "=")
		if !found || atomType == "" || path == "" {
			return nil, fmt.Errorf("bad map flag %q: want TYPE=path", spec)
		}
		if err := m.AddFile(atomType, path); err != nil {
			return nil, err
		}
		logger.Info("map loaded", zap.String("type", atomType), zap.String("file", path))
	}
	if len(m.Types()) == 0 {
		logger.Warn("no affinity maps loaded: every site scores the penalty")
	}
	return m, nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	return cfg.Build()
}
