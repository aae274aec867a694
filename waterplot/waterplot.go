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

//Package waterplot charts the results of a hydration run.
package waterplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gohydrate/gohydrate/water"
)

//Energies scores every placed water against s, shell by shell, flattened
//into one slice.
func Energies(shells [][]*water.Water, s water.Scorer) []float64 {
	var ret []float64
	for _, shell := range shells {
		for _, w := range shell {
			ret = append(ret, w.Energy(s))
		}
	}
	return ret
}

//EnergyHistogram writes a histogram of water energies to path. The output
//format follows the file extension (png, svg, pdf...).
func EnergyHistogram(energies []float64, bins int, title, path string) error {
	if len(energies) == 0 {
		return Error{message: "hydrate/waterplot: nothing to plot", deco: []string{"EnergyHistogram"}}
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "energy (kcal/mol)"
	p.Y.Label.Text = "waters"
	h, err := plotter.NewHist(plotter.Values(energies), bins)
	if err != nil {
		return Error{message: fmt.Sprintf("hydrate/waterplot: %v", err), deco: []string{"EnergyHistogram"}}
	}
	p.Add(h)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return Error{message: fmt.Sprintf("hydrate/waterplot: %v", err), deco: []string{"EnergyHistogram"}}
	}
	return nil
}

//ShellSizes writes a bar chart with the number of waters per shell.
func ShellSizes(shells [][]*water.Water, title, path string) error {
	if len(shells) == 0 {
		return Error{message: "hydrate/waterplot: nothing to plot", deco: []string{"ShellSizes"}}
	}
	sizes := make(plotter.Values, len(shells))
	for i, shell := range shells {
		sizes[i] = float64(len(shell))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "shell"
	p.Y.Label.Text = "waters"
	bars, err := plotter.NewBarChart(sizes, vg.Points(25))
	if err != nil {
		return Error{message: fmt.Sprintf("hydrate/waterplot: %v", err), deco: []string{"ShellSizes"}}
	}
	p.Add(bars)
	names := make([]string, len(shells))
	for i := range names {
		names[i] = fmt.Sprintf("%d", i+1)
	}
	p.NominalX(names...)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return Error{message: fmt.Sprintf("hydrate/waterplot: %v", err), deco: []string{"ShellSizes"}}
	}
	return nil
}

//Errors

//Error is the waterplot package error type. It implements the goHydrate
//Error interface.
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
