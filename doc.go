/*
 * doc.go, part of goHydrate.
 *
 * Copyright 2024 The goHydrate developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package hydrate provides the data model and geometric engine to place
//explicit water molecules around a solute: atoms and molecule containers,
//hydrogen-bond anchor geometry (package anchor), TIP5P-style rigid waters
//(package water), clash testing (package clash) and the shell-growing
//driver (package shell). The structure itself (positions, type labels,
//partial charges and bonds) is expected to come from an external source;
//package pdbqt provides a minimal one.
package hydrate

import "math"

//Deg2Rad converts an angle in degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180
}

//Rad2Deg converts an angle in radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180 / math.Pi
}
