/*
 * errors.go, part of goHydrate.
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

package hydrate

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else:
//the decoration slice should contain the names of the functions in the
//calling stack, plus, for each function, any relevant extra information.
//If passed an empty string, Decorate just returns the current slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete error type of the root package.
type CError struct {
	msg        string
	deco       []string
	noSuchAtom bool
}

func (err *CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IsNoSuchAtom returns whether the error comes from indexing an atom that
//is not in the container.
func (err *CError) IsNoSuchAtom() bool { return err.noSuchAtom }

//IsNoSuchAtom returns whether err comes from an atom index that is out of
//range for its container. These errors are fatal to the calling operation:
//they signal a bogus index, not a recoverable geometry condition.
func IsNoSuchAtom(err error) bool {
	n, ok := err.(interface{ IsNoSuchAtom() bool })
	return ok && n.IsNoSuchAtom()
}

//errDecorate asserts that the error implements the Error interface of this
//library and decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
