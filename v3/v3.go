/*
 * v3.go, part of goHydrate.
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

//Package v3 implements the small set of 3D-vector facilities needed to place
//explicit waters: a thin coordinate-matrix wrapper over gonum's dense
//matrices, plus the geometric primitives (normalization, resizing,
//perpendicular construction and rotation about an arbitrary axis) on which
//the anchor and water-building code is based.
//Within the package a "vector" is a row of a Matrix, i.e. the cartesian
//coordinates of one point in 3D space.
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one vector per row.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{message: fmt.Sprintf("goHydrate/v3: Input slice length %d not divisible by %d", l, cols), deco: []string{"NewMatrix"}}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Vec builds a 1-row Matrix from the components x, y and z.
func Vec(x, y, z float64) *Matrix {
	return &Matrix{mat.NewDense(1, 3, []float64{x, y, z})}
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//Dense2Matrix wraps a gonum Dense with 3 columns into a Matrix.
func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//Len returns the number of vectors in F.
func (F *Matrix) Len() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Clone returns an independent copy of F.
func (F *Matrix) Clone() *Matrix {
	ret := Zeros(F.Len())
	ret.Copy(F)
	return ret
}

//Add puts the element-wise sum of A and B in the receiver.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

//Sub puts the element-wise difference A-B in the receiver.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

//Scale puts A scaled by f in the receiver.
func (F *Matrix) Scale(f float64, A *Matrix) {
	F.Dense.Scale(f, A.Dense)
}

//AddVec adds the 1-row matrix vec to every vector of A, putting the
//result in the receiver. The receiver may be A itself. It will not work
//if vec is a view into A or the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	vr, _ := vec.Dims()
	fr, _ := F.Dims()
	if vr != 1 || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

//SubVec subtracts the 1-row matrix vec from every vector of A, putting the
//result in the receiver. It will not work if vec and A reference the same Matrix.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vec.Scale(-1, vec)
	F.AddVec(A, vec)
	vec.Scale(-1, vec)
}

//Dot returns the dot product of the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	var ret float64
	for i := 0; i < 3; i++ {
		ret += F.At(0, i) * B.At(0, i)
	}
	return ret
}

//Cross puts the cross product of the first vectors of a and b in the
//first vector of F.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.Len() < 1 || b.Len() < 1 || F.Len() < 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Errors

//Error is the v3 error type. It implements the goHydrate Error interface.
type Error struct {
	message    string
	deco       []string
	degenerate bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IsDegenerate returns whether the error comes from attempting to normalize
//a vector of near-zero magnitude.
func (err Error) IsDegenerate() bool { return err.degenerate }

//IsDegenerate returns whether err is a DegenerateVector error, i.e. whether
//it comes from attempting to normalize a near-zero vector. Such errors are
//recoverable: the caller is expected to skip the offending anchor.
func IsDegenerate(err error) bool {
	d, ok := err.(interface{ IsDegenerate() bool })
	return ok && d.IsDegenerate()
}

//PanicMsg is a message used for panics. It does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix   = PanicMsg("goHydrate/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct = PanicMsg("goHydrate/v3: Invalid matrix for cross product")
	ErrShape          = PanicMsg("goHydrate/v3: Dimension mismatch")
)
